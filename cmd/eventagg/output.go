package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

// redirectOutput points process stdout and stderr at files; an empty path
// leaves the stream alone. Fatal runtime crash reports follow stderr.
// Params: stdoutPath and stderrPath target files, opened in append mode.
// Returns: restore function re-pointing the streams and closing the files, or open error.
func redirectOutput(stdoutPath, stderrPath string) (func(), error) {
	origStdout, origStderr := os.Stdout, os.Stderr
	var files []*os.File
	restore := func() {
		os.Stdout, os.Stderr = origStdout, origStderr
		if stderrPath != "" {
			_ = debug.SetCrashOutput(nil, debug.CrashOptions{})
		}
		for _, file := range files {
			_ = file.Close()
		}
	}

	if stdoutPath != "" {
		file, err := openAppend(stdoutPath)
		if err != nil {
			return nil, fmt.Errorf("redirect stdout: %w", err)
		}
		files = append(files, file)
		os.Stdout = file
	}
	if stderrPath != "" {
		file, err := openAppend(stderrPath)
		if err != nil {
			restore()
			return nil, fmt.Errorf("redirect stderr: %w", err)
		}
		files = append(files, file)
		os.Stderr = file
		if err := debug.SetCrashOutput(file, debug.CrashOptions{}); err != nil {
			restore()
			return nil, fmt.Errorf("redirect crash output: %w", err)
		}
	}
	return restore, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
