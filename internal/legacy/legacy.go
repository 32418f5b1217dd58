// Package legacy rewrites the classic positional command line
//
//	server [port:6080] [instance:arcgis] user:name pwd:secret -verb [servicename [servicetype]] [N]
//
// into the subcommand form understood by the cobra commands.
package legacy

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownOperation is returned for a dash argument that names no verb.
var ErrUnknownOperation = errors.New("unknown operation")

// verbs maps legacy switches to subcommands
var verbs = map[string]string{
	"-s":         "start",
	"-start":     "start",
	"-x":         "stop",
	"-stop":      "stop",
	"-r":         "restart",
	"-restart":   "restart",
	"-p":         "pause",
	"-pause":     "pause",
	"-delete":    "delete",
	"-list":      "list",
	"-describe":  "describe",
	"-listtypes": "listtypes",
	"-stats":     "stats",
	"-h":         "--help",
}

// keyed maps legacy key:value prefixes to global flags
var keyed = []struct {
	key  string
	flag string
}{
	{"user", "--user"},
	{"pwd", "--password"},
	{"port", "--port"},
	{"instance", "--instance"},
}

// Invocation is a parsed legacy command line.
type Invocation struct {
	Server  string
	Values  map[string]string
	Command string
	Name    string
	Type    string
	Data    string
}

// IsLegacy reports whether args use the positional grammar. commands lists
// the subcommand names, which always win.
func IsLegacy(args []string, commands []string) bool {
	if len(args) == 0 || args[0] == "--" || strings.HasPrefix(args[0], "--") {
		return false
	}
	for _, c := range commands {
		if args[0] == c {
			return false
		}
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			return false
		}
		if _, ok := keyValue(arg); ok {
			return true
		}
		if _, ok := verbs[strings.ToLower(arg)]; ok {
			return true
		}
	}
	return false
}

// Parse splits a legacy command line into its parts.
func Parse(args []string) Invocation {
	inv := Invocation{Values: map[string]string{}}
	if len(args) == 0 {
		return inv
	}

	if !strings.ContainsAny(args[0], ":-") {
		inv.Server = args[0]
	}

	commandIndex := -1
	for i, arg := range args {
		if isSwitch(arg) {
			inv.Command = arg
			commandIndex = i
		}
		if kv, ok := keyValue(arg); ok {
			inv.Values[kv[0]] = kv[1]
		}
	}
	if commandIndex < 0 {
		return inv
	}

	var positional []string
	for _, arg := range args[commandIndex+1:] {
		if strings.Contains(arg, ":") {
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) > 0 {
		inv.Name = positional[0]
	}
	if len(positional) > 1 {
		if isServiceType(positional[1]) {
			inv.Type = positional[1]
			if len(positional) > 2 {
				inv.Data = positional[2]
			}
		} else {
			inv.Data = positional[1]
		}
	}
	return inv
}

// Translate rewrites legacy args into subcommand args. Args that are not in
// the legacy grammar are returned unchanged with translated set to false.
func Translate(args []string, commands []string) (out []string, translated bool, err error) {
	if !IsLegacy(args, commands) {
		return args, false, nil
	}

	inv := Parse(args)
	if inv.Command == "" {
		return []string{"--help"}, true, nil
	}

	sub, ok := verbs[strings.ToLower(inv.Command)]
	if !ok {
		return nil, true, errors.Mark(errors.Newf("Unknown operation '%s'", inv.Command), ErrUnknownOperation)
	}
	if sub == "--help" {
		return []string{"--help"}, true, nil
	}

	if inv.Server != "" {
		out = append(out, "--server="+inv.Server)
	}
	for _, k := range keyed {
		if v, ok := inv.Values[k.key]; ok {
			out = append(out, k.flag+"="+v)
		}
	}

	out = append(out, sub)
	switch sub {
	case "listtypes", "stats":
		return out, true, nil
	case "delete":
		if inv.Name != "" {
			typ := inv.Type
			if typ == "" {
				typ = "MapServer"
			}
			out = append(out, inv.Name, typ)
		}
		if inv.Data == "N" {
			out = append(out, "--yes")
		}
		return out, true, nil
	}

	if inv.Name != "" {
		out = append(out, inv.Name)
		if inv.Type != "" {
			out = append(out, inv.Type)
		}
	}
	return out, true, nil
}

func isSwitch(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg[1] != '-'
}

// keyValue splits recognised key:value tokens. Only the first colon
// separates, so values may contain colons.
func keyValue(arg string) ([2]string, bool) {
	key, value, found := strings.Cut(arg, ":")
	if !found {
		return [2]string{}, false
	}
	key = strings.ToLower(key)
	for _, k := range keyed {
		if key == k.key {
			return [2]string{key, value}, true
		}
	}
	return [2]string{}, false
}

// isServiceType matches tokens like MapServer or GPServer; "Server" must
// not start the token.
func isServiceType(arg string) bool {
	return strings.Index(strings.ToLower(arg), "server") > 1
}
