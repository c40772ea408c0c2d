// A simple interactive shell and demo harness for a tuplespace: seed
// fixtures from a YAML file, put/take/get tuples from the command
// line, optionally run a cron-scheduled producer, and print a
// diagnostic snapshot on request.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/corespace/tuplespace/config"
	"github.com/corespace/tuplespace/diag"
	"github.com/corespace/tuplespace/registry"
	"github.com/corespace/tuplespace/space"
	"github.com/corespace/tuplespace/tuple"
)

func main() {
	var (
		spaceName   = flag.String("space", registry.DefaultName, "space name")
		configPath  = flag.String("c", "", "registry defaults file (YAML, see config.Load)")
		fixturePath = flag.String("f", "", "fixture file for -space (YAML, see config.ParseFixtures)")
		cronExpr    = flag.String("cron", "", "cron expression for a periodic demo producer")
		cronFields  = flag.String("cron-fields", "tick=1", "comma-separated key=value fields the cron producer puts")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defaults := &config.Defaults{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spacesh: %v\n", err)
			os.Exit(1)
		}
		defaults = loaded
		for _, sc := range defaults.Spaces {
			seedSpace := registry.Get(sc.Name)
			for _, path := range sc.Fixtures {
				if err := seedFixtures(seedSpace, path, defaults.DefaultTTL); err != nil {
					fmt.Fprintf(os.Stderr, "spacesh: seeding %q from %s: %v\n", sc.Name, path, err)
					os.Exit(1)
				}
			}
		}
	}

	s := registry.Get(*spaceName)
	defer registry.Close(*spaceName)

	if *fixturePath != "" {
		if err := seedFixtures(s, *fixturePath, defaults.DefaultTTL); err != nil {
			fmt.Fprintf(os.Stderr, "spacesh: seeding fixtures: %v\n", err)
			os.Exit(1)
		}
	}

	if *cronExpr != "" {
		fields, err := parseFieldFlags(*cronFields)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spacesh: %v\n", err)
			os.Exit(1)
		}
		go runCronProducer(ctx, s, *cronExpr, fields)
	}

	fmt.Fprintf(os.Stderr, "spacesh: space %q ready. commands: put/take/get/stats/quit\n", s.Name)
	repl(ctx, s, defaults.DefaultTTL, defaults.DefaultTimeout)
}

// repl reads newline-delimited commands from stdin of the form:
//
//	put key=value,key=value[,]
//	take key=value,key=nil
//	get key=value,key=nil
//	stats
//	quit
//
// A put with no fixture-supplied TTL gets defaultTimeout's sibling
// registry-wide default, defaultTTL; a blocking take/get with no
// explicit timeout falls back to defaultTimeout instead of NoWait.
func repl(ctx context.Context, s *space.Space, defaultTTL, defaultTimeout time.Duration) {
	in := bufio.NewReader(os.Stdin)
	for {
		line, err := in.ReadString('\n')
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "spacesh: %v\n", err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "exit":
			return
		case "stats":
			fmt.Print(diag.Take(s).RenderMarkdown())
		case "put":
			fields, err := parseFieldFlags(rest)
			if err != nil {
				fmt.Fprintf(os.Stderr, "spacesh: %v\n", err)
				continue
			}
			if err := s.Put(fields, defaultTTL, nil); err != nil {
				fmt.Fprintf(os.Stderr, "spacesh: put: %v\n", err)
			}
		case "take", "get":
			fields, err := parseTemplateFlags(rest)
			if err != nil {
				fmt.Fprintf(os.Stderr, "spacesh: %v\n", err)
				continue
			}
			timeout := space.NoWait
			if defaultTimeout > 0 {
				timeout = defaultTimeout
			}
			var got tuple.Fields
			if cmd == "take" {
				got, err = s.Take(ctx, fields, timeout, nil)
			} else {
				got, err = s.Get(ctx, fields, timeout, nil)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "spacesh: %s: %v\n", cmd, err)
				continue
			}
			if got == nil {
				fmt.Println("(no match)")
			} else {
				fmt.Printf("%v\n", map[string]interface{}(got))
			}
		default:
			fmt.Fprintf(os.Stderr, "spacesh: unknown command %q\n", cmd)
		}
	}
}

// seedFixtures puts every fixture in path into s. A fixture with no
// explicit ttl falls back to defaultTTL (0 meaning no expiry).
func seedFixtures(s *space.Space, path string, defaultTTL time.Duration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fixtures, err := config.ParseFixtures(data)
	if err != nil {
		return err
	}
	for _, fx := range fixtures {
		ttl := defaultTTL
		if fx.TTL != "" {
			ttl, err = time.ParseDuration(fx.TTL)
			if err != nil {
				return fmt.Errorf("fixture ttl %q: %w", fx.TTL, err)
			}
		}
		if err := s.Put(fx.Fields, ttl, nil); err != nil {
			return fmt.Errorf("fixture %v: %w", fx.Fields, err)
		}
	}
	fmt.Fprintf(os.Stderr, "spacesh: seeded %d fixtures into %q\n", len(fixtures), s.Name)
	return nil
}

// runCronProducer puts fields into s at every occurrence of exprStr
// until ctx is cancelled.
func runCronProducer(ctx context.Context, s *space.Space, exprStr string, fields tuple.Fields) {
	expr, err := cronexpr.Parse(exprStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacesh: bad cron expression %q: %v\n", exprStr, err)
		return
	}
	for {
		next := expr.Next(time.Now())
		wait := time.Until(next)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			if err := s.Put(fields, 0, nil); err != nil {
				fmt.Fprintf(os.Stderr, "spacesh: cron put: %v\n", err)
			}
		}
	}
}

// parseFieldFlags parses "k=v,k=v" into tuple.Fields, coercing each
// value to an int64 when it parses as one and leaving it a string
// otherwise.
func parseFieldFlags(s string) (tuple.Fields, error) {
	fields := tuple.Fields{}
	if s == "" {
		return fields, nil
	}
	for _, pair := range strings.Split(s, ",") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad field %q: expected key=value", pair)
		}
		fields[k] = coerce(v)
	}
	return fields, nil
}

// parseTemplateFlags is like parseFieldFlags but treats the literal
// value "nil" as a wildcard formal field.
func parseTemplateFlags(s string) (tuple.Fields, error) {
	fields, err := parseFieldFlags(s)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if v == "nil" {
			fields[k] = tuple.Any
		}
	}
	return fields, nil
}

func coerce(v string) interface{} {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}
