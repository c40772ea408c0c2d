// Package predicate compiles small JavaScript expressions into
// tuple.PredicateFunc values, using Goja
// (https://github.com/dop251/goja) as the embedded interpreter.
//
// A predicate source is a single expression evaluated with the
// candidate field value bound to "value". It must evaluate to a
// boolean. A "cron" builtin, backed by gorhill/cronexpr, lets a
// predicate ask whether the current moment falls within a given
// cron window, which is useful for templates that should only match
// during scheduled periods.
package predicate
