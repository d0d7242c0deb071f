// Package profiling provides CPU, heap, and trace profiling for the CLI.
package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Session collects profiles for one command invocation. Zero value is
// ready to use; Stop is a no-op when nothing was started.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	heapPath  string
}

// StartCPU begins CPU profiling to path.
func (s *Session) StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	s.cpuFile = f
	return nil
}

// StartTrace begins execution tracing to path.
func (s *Session) StartTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to start trace: %w", err)
	}
	s.traceFile = f
	return nil
}

// DeferHeap schedules a heap snapshot to be written at Stop.
func (s *Session) DeferHeap(path string) {
	s.heapPath = path
}

// Stop flushes every active profile. Called once per session.
func (s *Session) Stop() error {
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
	if s.heapPath != "" {
		if err := writeHeap(s.heapPath); err != nil {
			return err
		}
		s.heapPath = ""
	}
	return nil
}

// writeHeap writes a point-in-time heap snapshot.
func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Collect garbage first so the snapshot reflects live objects.
	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
