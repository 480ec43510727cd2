//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/gomdhl"
	mainPkg = "./cmd/gomdhl"

	// propertyTests selects the rapid-driven tests of the highlight core.
	propertyTests = "MatchesHTMLProperty|Idempotent|ShiftedBlockIsReused|PositionsHoldText"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"p":    Test.Property,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"self": Bench.Self,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles gomdhl with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes the binary and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install for gomdhl.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes the binary go install placed.
func Uninstall() error {
	path, err := installedBinary()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	fmt.Println("Removed", path)
	return nil
}

// Coverage writes an HTML coverage report.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs every test with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Verbose runs every test with verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "./...")
}

// Property runs the highlight property tests with more generated cases.
// RAPID_CHECKS overrides the case count.
func (Test) Property() error {
	checks := cmp.Or(os.Getenv("RAPID_CHECKS"), "5000")
	return sh.RunV("go", "test", "./pkg/highlight/",
		"-run", propertyTests,
		"-rapid.checks="+checks,
	)
}

// CLI runs the command tests verbosely.
func (Test) CLI() error {
	return gotestsum("standard-verbose", "./internal/cli/")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without fixing anything.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate runs the checks a change must pass.
func (CI) Gate() error {
	st.SerialDeps(CI.Fmt, CI.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("✓ CI gate passed")
	return nil
}

// Fmt fails when gofmt would change a file.
func (CI) Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	if err := sh.RunV("go", "mod", "tidy", "-diff"); err != nil {
		return fmt.Errorf("go.mod or go.sum is not tidy: %w", err)
	}
	return nil
}

// Cross builds gomdhl for each release platform without cgo.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		fmt.Println("  building", platform)
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs every benchmark with allocation counts.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// Self highlights the repository's own Markdown with the built binary.
// Debug logging reports the run's duration and cache counters.
func (Bench) Self() error {
	st.Deps(Build)
	return sh.RunV(binary, "--debug", "highlight", "--format", "json", "--compact", "--no-memo", ".")
}

// gotestsum runs go test through gotestsum with the given output format.
func gotestsum(format string, args ...string) error {
	jobs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", jobs, "-parallel", jobs}, args...)
	return sh.RunV("go", cmdArgs...)
}

// git runs a git command and returns its trimmed output, or "" on error.
func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags sets the version variables of cmd/gomdhl.
func ldflags() string {
	return strings.Join([]string{
		"-X main.version=" + cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"-X main.commit=" + cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"-X main.date=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}

// installedBinary returns where go install places gomdhl.
func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, "gomdhl"), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", "gomdhl"), nil
}
