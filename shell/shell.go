package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/service/pool"
)

// Simulator is the part of the simulator facade the shell drives
type Simulator interface {
	Submit(ctx context.Context, name string, memoryMB, durationSec int) (int, error)
	Snapshot() pool.Snapshot
	Cancel(ctx context.Context, id int) error
	Processes(ctx context.Context, states ...process.State) ([]*process.Process, error)
}

// Shell is an interactive menu loop over a line oriented reader
type Shell struct {
	simulator Simulator
	scanner   *bufio.Scanner
	out       io.Writer
}

func New(simulator Simulator, in io.Reader, out io.Writer) *Shell {
	return &Shell{simulator: simulator, scanner: bufio.NewScanner(in), out: out}
}

// Run serves menu commands until exit is chosen, input ends or ctx is done
func (s *Shell) Run(ctx context.Context) error {
	s.println("=== Process memory simulator ===")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println("\n1. Create process")
		s.println("2. Show memory state")
		s.println("3. Exit")
		s.println("4. List processes")
		s.println("5. Cancel process")
		option, err := s.prompt("Select an option: ")
		if err != nil {
			return eof(err)
		}
		switch strings.TrimSpace(option) {
		case "1":
			err = s.create(ctx)
		case "2":
			s.showState()
		case "3":
			return nil
		case "4":
			err = s.list(ctx)
		case "5":
			err = s.cancel(ctx)
		default:
			s.println("Invalid option.")
		}
		if err != nil {
			return eof(err)
		}
	}
}

func (s *Shell) create(ctx context.Context) error {
	name, err := s.prompt("Process name (blank to generate): ")
	if err != nil {
		return err
	}
	input, err := s.prompt("Required memory (MB): ")
	if err != nil {
		return err
	}
	memoryMB, err := ParsePositive(input)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	if input, err = s.prompt("Duration (seconds): "); err != nil {
		return err
	}
	durationSec, err := ParseNonNegative(input)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	pid, err := s.simulator.Submit(ctx, strings.TrimSpace(name), memoryMB, durationSec)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	fmt.Fprintf(s.out, "Submitted PID: %d\n", pid)
	return nil
}

func (s *Shell) showState() {
	snapshot := s.simulator.Snapshot()
	s.println("=== Memory state ===")
	fmt.Fprintf(s.out, "Available memory: %d of %d MB\n", snapshot.AvailableMB, snapshot.TotalMB)
	fmt.Fprintf(s.out, "Running processes: %d\n", snapshot.Running)
	fmt.Fprintf(s.out, "Waiting: %d\n", snapshot.Waiting)
	if snapshot.LeakedMB > 0 {
		fmt.Fprintf(s.out, "Leaked memory: %d MB\n", snapshot.LeakedMB)
	}
	s.println("====================")
}

func (s *Shell) list(ctx context.Context) error {
	input, err := s.prompt("States (blank for all): ")
	if err != nil {
		return err
	}
	states, err := ParseStates(input)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	processes, err := s.simulator.Processes(ctx, states...)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	if len(processes) == 0 {
		s.println("No processes.")
		return nil
	}
	for _, proc := range processes {
		fmt.Fprintf(s.out, "%5d  %-16s %6dMB %5ds  %s\n", proc.ID, proc.Name, proc.MemoryMB, proc.DurationSec, proc.State)
	}
	return nil
}

func (s *Shell) cancel(ctx context.Context) error {
	input, err := s.prompt("PID: ")
	if err != nil {
		return err
	}
	pid, err := ParsePositive(input)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	if err = s.simulator.Cancel(ctx, pid); err != nil {
		s.println(err.Error())
		return nil
	}
	fmt.Fprintf(s.out, "Cancelled PID: %d\n", pid)
	return nil
}

func (s *Shell) prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

// eof maps end of input to a clean exit
func eof(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
