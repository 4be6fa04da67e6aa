package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to extensions. They match the configuration keys so an
// extension calling config.Load sees the same settings as tpnl.
const (
	EnvLedgerFile   = "TPNL_LEDGER_FILE"
	EnvLedgerSource = "TPNL_LEDGER_SOURCE"
	EnvDatabaseURL  = "TPNL_DATABASE_URL"
	EnvVerbose      = "TPNL_VERBOSE"
)

// RunExtension attempts to find and execute an external tpnl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "tpnl-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// global flags are only passed when set, otherwise the extension reads the
	// configuration on its own.
	cmd.Env = os.Environ()
	for env, value := range map[string]string{
		EnvLedgerFile:   *ledgerFile,
		EnvLedgerSource: *source,
		EnvDatabaseURL:  *databaseURL,
	} {
		if value != "" {
			cmd.Env = append(cmd.Env, env+"="+value)
		}
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
