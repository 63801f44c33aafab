package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
)

// RunExtension attempts to find and execute an external hh-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the effective settings in the HH_* environment
// variables config.Load reads.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "hh-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = append(os.Environ(),
		"HH_DB_FILE="+cfg.DBFile,
		"HH_CURRENCY="+cfg.Currency,
		"HH_LANGUAGE="+cfg.Language,
		"HH_ADDR="+cfg.Addr,
		"HH_GEMINI_MODEL="+cfg.GeminiModel,
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
