package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var envFuncs = template.FuncMap{
	// env reads an environment variable, empty if unset.
	"env": os.Getenv,
}

var execFuncs = template.FuncMap{
	"env": os.Getenv,
	// exec runs a command and returns its trimmed stdout. Lines containing a
	// pipe go through the shell.
	"exec": func(line string) (string, error) {
		var cmd *exec.Cmd
		if strings.Contains(line, " | ") {
			cmd = exec.Command("sh", "-c", line)
		} else {
			fields := strings.Fields(line)
			if len(fields) < 1 {
				return "", errors.New("no command provided")
			}
			cmd = exec.Command(fields[0], fields[1:]...)
		}

		out, err := cmd.Output()
		return strings.TrimSpace(string(out)), err
	},
}

// expand renders value as a template. exec is only known to the template
// when allowExec is set, otherwise using it is a parse error.
func expand(value string, allowExec bool) (string, error) {
	funcs := envFuncs
	if allowExec {
		funcs = execFuncs
	}

	tmpl, err := template.New("connection_url").Funcs(funcs).Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault leaves the value untouched if it isn't a valid template.
func expandOrDefault(value string, allowExec bool) string {
	ex, err := expand(value, allowExec)
	if err != nil {
		return value
	}
	return ex
}
