// Package objemit implements C10 (spec.md §4.7): it finalizes an
// *ir.Module built by internal/codegen and renders target-triple object
// bytes (ELF/Mach-O/COFF) by shelling out to `llc`, mirroring how the
// original compiler's link.rs shells out to a system linker
// (original_source/src/link.rs) rather than embedding a linker. The
// compiler core stops here; linking is the caller's concern (spec.md §1,
// §6.5).
package objemit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/llir/llvm/ir"
)

// Target is one supported `--target` triple (spec.md §6.1).
type Target string

const (
	LinuxAMD64   Target = "x86_64-unknown-linux-gnu"
	WindowsAMD64 Target = "x86_64-pc-windows-gnu"
	DarwinAMD64  Target = "x86_64-apple-darwin"
	DarwinARM64  Target = "aarch64-apple-darwin"
)

// Targets lists every triple `paw --list-targets` enumerates, in the
// order spec.md §6.1 states them.
var Targets = []Target{LinuxAMD64, WindowsAMD64, DarwinAMD64, DarwinARM64}

func (t Target) Valid() bool {
	for _, v := range Targets {
		if v == t {
			return true
		}
	}
	return false
}

// HostTarget guesses the default --target when none is given, the way
// the original CLI defaults to the build host's own triple
// (original_source/src/cli/args.rs).
func HostTarget() Target {
	switch {
	case isDarwinARM():
		return DarwinARM64
	case isDarwin():
		return DarwinAMD64
	case isWindows():
		return WindowsAMD64
	default:
		return LinuxAMD64
	}
}

// Emit finalizes m and renders target's object bytes. It writes m's
// textual IR to a uuid-named scratch file under dir (so concurrent
// invocations never collide, spec.md §5's note that file reads/parses
// may run in parallel) and invokes `llc -filetype=obj -mtriple=<triple>`
// to produce the object, reading the result back into memory.
func Emit(m *ir.Module, target Target, dir string) ([]byte, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("objemit: unsupported target %q", target)
	}
	if dir == "" {
		dir = os.TempDir()
	}
	base := uuid.NewString()
	llPath := filepath.Join(dir, base+".ll")
	objPath := filepath.Join(dir, base+".o")
	defer os.Remove(llPath)
	defer os.Remove(objPath)

	if err := os.WriteFile(llPath, []byte(m.String()), 0o644); err != nil {
		return nil, fmt.Errorf("objemit: writing scratch IR: %w", err)
	}

	cmd := exec.Command("llc", "-filetype=obj", "-mtriple="+string(target), "-o", objPath, llPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("objemit: llc failed: %w\n%s", err, out)
	}

	bytes, err := os.ReadFile(objPath)
	if err != nil {
		return nil, fmt.Errorf("objemit: reading object output: %w", err)
	}
	return bytes, nil
}

func isDarwin() bool  { return runtime.GOOS == "darwin" }
func isWindows() bool { return runtime.GOOS == "windows" }

// isDarwinARM narrows HostTarget's darwin case to the arm64 triple when
// the build host itself is running on Apple silicon.
func isDarwinARM() bool { return isDarwin() && runtime.GOARCH == "arm64" }
