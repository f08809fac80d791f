package whisper

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultSize        = "small"
	defaultComputeType = "int8"
	defaultDevice      = "auto"
	defaultPython      = "python3"

	maxLineBytes = 4 << 20
)

// Helper protocol events, one JSON object per stdout line.
const (
	eventReady   = "ready"
	eventInfo    = "info"
	eventSegment = "segment"
	eventDone    = "done"
	eventError   = "error"
)

// message mirrors every line the helper writes.
type message struct {
	Event   string `json:"event"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Model   string `json:"model"`

	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`

	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type request struct {
	Audio     string `json:"audio"`
	BeamSize  int    `json:"beam_size"`
	VADFilter bool   `json:"vad_filter"`
	Language  string `json:"language,omitempty"`
}

// FasterWhisper runs a faster-whisper model in a long-lived Python helper
// process. The model is loaded once by Load and reused until Close.
type FasterWhisper struct {
	opts LoadOptions

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
	group  errgroup.Group

	mu         sync.Mutex
	lastStderr string

	busy     bool
	waitOnce sync.Once
	waitErr  error
}

var _ Model = (*FasterWhisper)(nil)

// Load starts the helper and blocks until the model is ready. Any failure is
// reported as ErrModelLoad. Cancelling ctx kills the helper.
func Load(ctx context.Context, opts LoadOptions) (*FasterWhisper, error) {
	if opts.Size == "" {
		opts.Size = defaultSize
	}
	if opts.ComputeType == "" {
		opts.ComputeType = defaultComputeType
	}
	if opts.Device == "" {
		opts.Device = defaultDevice
	}
	if opts.Python == "" {
		opts.Python = defaultPython
	}

	python, err := exec.LookPath(opts.Python)
	if err != nil {
		return nil, fmt.Errorf("%w: python interpreter %q: %w", ErrModelLoad, opts.Python, err)
	}
	script, err := helperPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}

	cmd := exec.CommandContext(ctx, python, script,
		"--model", opts.Size,
		"--compute-type", opts.ComputeType,
		"--device", opts.Device,
	)
	cmd.Env = os.Environ()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %w", ErrModelLoad, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %w", ErrModelLoad, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stderr pipe: %w", ErrModelLoad, err)
	}

	slog.Info("loading model", "size", opts.Size, "compute_type", opts.ComputeType, "device", opts.Device)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start helper: %w", ErrModelLoad, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	fw := &FasterWhisper{opts: opts, cmd: cmd, stdin: stdin, stdout: scanner}
	fw.group.Go(func() error {
		return fw.logStderr(stderr)
	})

	msg, err := fw.readMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, fw.exited(err))
	}
	switch msg.Event {
	case eventReady:
	case eventError:
		fw.Close()
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, msg.Message)
	default:
		fw.Close()
		return nil, fmt.Errorf("%w: unexpected helper event %q", ErrModelLoad, msg.Event)
	}

	slog.Info("model loaded", "size", opts.Size)
	return fw, nil
}

// Transcribe sends one request to the helper. The info record is read
// eagerly; segments are read from the helper as the stream is drained.
func (f *FasterWhisper) Transcribe(ctx context.Context, audioPath string, opts Options) (*Stream, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	if f.busy {
		return nil, Info{}, errors.New("previous segment stream not drained")
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, Info{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	abs, err := filepath.Abs(audioPath)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: resolve path: %w", ErrTranscription, err)
	}

	req := request{
		Audio:     abs,
		BeamSize:  opts.BeamSize,
		VADFilter: opts.VADFilter,
		Language:  opts.Language,
	}
	if err := json.NewEncoder(f.stdin).Encode(req); err != nil {
		return nil, Info{}, fmt.Errorf("%w: send request: %w", ErrTranscription, err)
	}

	msg, err := f.readMessage()
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %w", ErrTranscription, f.exited(err))
	}
	switch msg.Event {
	case eventInfo:
	case eventError:
		return nil, Info{}, fmt.Errorf("%w: %s", ErrTranscription, msg.Message)
	default:
		return nil, Info{}, fmt.Errorf("%w: unexpected helper event %q", ErrTranscription, msg.Event)
	}

	info := Info{
		Language:            msg.Language,
		LanguageProbability: msg.LanguageProbability,
		Duration:            msg.Duration,
	}

	f.busy = true
	return NewStream(f.nextSegment), info, nil
}

func (f *FasterWhisper) nextSegment() (Segment, bool, error) {
	msg, err := f.readMessage()
	if err != nil {
		f.busy = false
		return Segment{}, false, fmt.Errorf("%w: %w", ErrTranscription, f.exited(err))
	}
	switch msg.Event {
	case eventSegment:
		return Segment{Start: msg.Start, End: msg.End, Text: msg.Text}, true, nil
	case eventDone:
		f.busy = false
		return Segment{}, false, nil
	case eventError:
		f.busy = false
		return Segment{}, false, fmt.Errorf("%w: %s", ErrTranscription, msg.Message)
	default:
		f.busy = false
		return Segment{}, false, fmt.Errorf("%w: unexpected helper event %q", ErrTranscription, msg.Event)
	}
}

// Close stops the helper and waits for it to exit.
func (f *FasterWhisper) Close() error {
	f.stdin.Close()
	for f.stdout.Scan() {
	}
	return f.wait()
}

// readMessage returns the next protocol line, skipping anything that is not
// a JSON object.
func (f *FasterWhisper) readMessage() (message, error) {
	for f.stdout.Scan() {
		line := strings.TrimSpace(f.stdout.Text())
		if !strings.HasPrefix(line, "{") {
			if line != "" {
				slog.Debug("whisper helper stdout", "line", line)
			}
			continue
		}
		var msg message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			return message{}, fmt.Errorf("decode helper message: %w", err)
		}
		return msg, nil
	}
	if err := f.stdout.Err(); err != nil {
		return message{}, fmt.Errorf("read helper output: %w", err)
	}
	return message{}, io.ErrUnexpectedEOF
}

// exited turns an end-of-output error into one that carries the helper's
// last stderr line and exit status.
func (f *FasterWhisper) exited(err error) error {
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	waitErr := f.wait()

	f.mu.Lock()
	last := f.lastStderr
	f.mu.Unlock()

	switch {
	case last != "" && waitErr != nil:
		return fmt.Errorf("helper exited (%v): %s", waitErr, last)
	case last != "":
		return fmt.Errorf("helper exited: %s", last)
	case waitErr != nil:
		return fmt.Errorf("helper exited: %w", waitErr)
	}
	return errors.New("helper exited unexpectedly")
}

func (f *FasterWhisper) wait() error {
	f.waitOnce.Do(func() {
		f.group.Wait()
		f.waitErr = f.cmd.Wait()
	})
	return f.waitErr
}

func (f *FasterWhisper) logStderr(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		slog.Debug("whisper helper", "stderr", line)

		f.mu.Lock()
		f.lastStderr = line
		f.mu.Unlock()
	}
	return scanner.Err()
}
