// check-jmx is a Nagios-compatible health check for JVM services exposed
// through a Jolokia HTTP agent. It invokes one zero-argument operation on
// one MBean, prints a one-line summary to stdout, and exits with the plugin
// status code: 0 OK, 2 CRITICAL, 3 UNKNOWN.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/checkjmx/checkjmx/internal/config"
	"github.com/checkjmx/checkjmx/internal/jolokia"
	"github.com/checkjmx/checkjmx/internal/probe"
)

var version = "dev"

const longHelp = `check-jmx probes a JVM service through its Jolokia HTTP agent: it invokes
a single zero-argument operation on one MBean and maps the result onto
monitoring-plugin semantics.

The object name may be an exact ObjectName or a pattern (containing * or ?).
A pattern must match exactly one MBean on the endpoint; zero or multiple
matches fail the check.

The result is interpreted as follows:
  - a mapping with a "status" entry is OK when that entry equals "UP",
    CRITICAL otherwise
  - a mapping without a "status" entry, a number, a string, or a list is OK
  - a null result is CRITICAL

Exit codes: 0 OK, 2 CRITICAL, 3 UNKNOWN (usage errors, unreachable endpoint,
or failed invocation).

Credentials may also come from the ` + config.EnvUsername + ` and
` + config.EnvPassword + ` environment variables, or from the YAML defaults
file given with --config. Flags win over the environment, which wins over
the file.`

const example = `  check-jmx -U http://app-host:8778/jolokia \
      -O 'org.springframework.boot:type=Endpoint,name=Health' -o health`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run wires the command so tests can drive it with canned args and buffers.
// The returned int is the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	exitCode := probe.StatusOK.ExitCode()

	var (
		cfg     config.Config
		cfgFile string
	)

	rootCmd := &cobra.Command{
		Use:           "check-jmx -U <service-url> -O <object-name> -o <operation>",
		Short:         "Check the health of a JVM service over Jolokia",
		Long:          longHelp,
		Example:       example,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.ApplyEnv()
			if cfgFile != "" {
				defaults, err := config.LoadFile(cfgFile)
				if err != nil {
					fmt.Fprintln(stdout, err)
					exitCode = probe.StatusUnknown.ExitCode()
					return nil
				}
				cfg.Merge(defaults)
			}
			cfg.Normalize()

			if missing := cfg.MissingRequired(); len(missing) > 0 {
				fmt.Fprintf(stdout, "missing required arguments: %s\n\n", strings.Join(missing, ", "))
				fmt.Fprint(stdout, cmd.UsageString())
				exitCode = probe.StatusUnknown.ExitCode()
				return nil
			}

			logger := newLogger(cfg.Verbose, stderr)
			defer logger.Sync() //nolint:errcheck

			result, err := check(cfg, logger)
			if err != nil {
				fmt.Fprintln(stdout, err)
				logger.Error("check failed", zap.Error(err))
				exitCode = probe.StatusUnknown.ExitCode()
				return nil
			}
			fmt.Fprintln(stdout, result.Output)
			exitCode = result.Status.ExitCode()
			return nil
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&cfg.URL, "url", "U", "", "Jolokia agent URL, e.g. http://host:8778/jolokia")
	f.StringVarP(&cfg.Object, "object", "O", "", "MBean object name, exact or pattern")
	f.StringVarP(&cfg.Operation, "operation", "o", "", "zero-argument operation to invoke")
	f.StringVar(&cfg.Username, "username", "", "HTTP basic auth username")
	f.StringVar(&cfg.Password, "password", "", "HTTP basic auth password")
	f.BoolVarP(&cfg.Verbose, "verbose", "A", false, "log diagnostics to stderr")
	f.DurationVar(&cfg.Timeout, "timeout", 0, "connect and invoke deadline (default 10s)")
	f.StringVar(&cfgFile, "config", "", "YAML defaults file")

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Flag parse errors: unknown flags are rejected rather than
		// ignored, and a value flag at the end of the line lands here too.
		fmt.Fprintln(stdout, err)
		fmt.Fprint(stdout, rootCmd.UsageString())
		return probe.StatusUnknown.ExitCode()
	}
	return exitCode
}

// check runs one probe invocation against the configured endpoint.
func check(cfg config.Config, logger *zap.Logger) (probe.Result, error) {
	client, err := jolokia.NewClient(jolokia.Options{
		AgentURL: cfg.URL,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return probe.Result{Status: probe.StatusUnknown}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	return probe.New(client, logger).Run(ctx, cfg.Object, cfg.Operation)
}

// newLogger builds the diagnostics logger. stdout carries only the check
// result line, so diagnostics always go to stderr and only under --verbose.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}
