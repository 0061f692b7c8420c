// Package flagx lets several configuration loaders share os.Args: each loader
// keeps only the flags it owns and parses them with its own FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps the arguments in args whose flag name is listed in owned,
// together with their values. Both "-f value" and "-f=value" forms are
// recognised; a following argument that starts with "-" is never consumed as
// a value. Order is preserved and the result is never nil.
func FilterArgs(args []string, owned []string) []string {
	set := make(map[string]bool, len(owned))
	for _, f := range owned {
		set[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if set[name] {
				out = append(out, arg)
			}
			continue
		}

		if !set[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFileFlag returns the JSON config path passed with -c or -config,
// or "" when neither is present. When both appear the last one wins.
func ConfigFileFlag() string {
	return stringFlag([]string{"-c", "-config"}, "config", "c")
}

// EnvFileFlag returns the dotenv path passed with -env, or "" when absent.
func EnvFileFlag() string {
	return stringFlag([]string{"-env"}, "env")
}

func stringFlag(owned []string, names ...string) string {
	var v string

	fs := flag.NewFlagSet(names[0], flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, n := range names {
		fs.StringVar(&v, n, "", "")
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], owned))

	return v
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
