package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/conclave-dev/conclave/internal/models"
	"github.com/conclave-dev/conclave/internal/planner"
)

// Request is one inbound task submission.
type Request struct {
	Workspace string `json:"workspace,omitempty"`
	Text      string `json:"text"`
	Mode      string `json:"mode,omitempty"`
}

// Response is the single terminal reply for a request.
type Response struct {
	InboxID string `json:"inbox_id,omitempty"`
	Status  string `json:"status"`
	Mode    string `json:"mode,omitempty"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

// requestSchema constrains inbound payloads before any session work starts.
const requestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["text"],
	"properties": {
		"workspace": {"type": "string"},
		"text": {"type": "string", "minLength": 1},
		"mode": {"type": "string", "enum": ["plan", "exec"]}
	},
	"additionalProperties": false
}`

// RunFunc runs one deliberation session for a task. The server invokes
// it with a fresh task per request; implementations must be safe for
// concurrent use.
type RunFunc func(ctx context.Context, task models.Task) (models.SessionOutcome, error)

// Server accepts task requests over a Transport, records each in the
// inbox, and answers with exactly one terminal response per request.
type Server struct {
	run    RunFunc
	inbox  *Inbox
	schema *jsonschema.Schema
	logger *slog.Logger
}

// NewServer creates a gateway server. The inbox may be nil, in which
// case requests are served without a persistent trail.
func NewServer(run RunFunc, inbox *Inbox, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var schemaValue any
	if err := json.Unmarshal([]byte(requestSchema), &schemaValue); err != nil {
		return nil, fmt.Errorf("parsing request schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("request.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding request schema: %w", err)
	}
	schema, err := compiler.Compile("request.json")
	if err != nil {
		return nil, fmt.Errorf("compiling request schema: %w", err)
	}

	return &Server{run: run, inbox: inbox, schema: schema, logger: logger}, nil
}

// ServeTransport reads requests from the transport and writes responses.
// It runs until the transport's reader returns io.EOF or a read error.
func (s *Server) ServeTransport(t *Transport) {
	ctx := context.Background()

	for {
		req, raw, err := t.ReadRequest()
		if err != nil {
			if err == io.EOF {
				return
			}
			s.logger.Debug("read error", "error", err)
			if raw == nil {
				return
			}
			if writeErr := t.WriteResponse(&Response{Status: "error", Error: err.Error()}); writeErr != nil {
				s.logger.Debug("write error", "error", writeErr)
			}
			continue
		}

		resp := s.handle(ctx, req, raw)
		if writeErr := t.WriteResponse(resp); writeErr != nil {
			s.logger.Debug("write error", "error", writeErr)
			return
		}
	}
}

// ServeStdio runs the server on stdin/stdout.
func (s *Server) ServeStdio(stdin io.Reader, stdout io.Writer) {
	s.ServeTransport(NewTransport(stdin, stdout))
}

func (s *Server) handle(ctx context.Context, req *Request, raw []byte) *Response {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &Response{Status: "error", Error: fmt.Sprintf("invalid request: %v", err)}
	}
	if isPing(payload) {
		return &Response{Status: "ok"}
	}
	if err := s.schema.Validate(payload); err != nil {
		return &Response{Status: "error", Error: fmt.Sprintf("invalid request: %v", err)}
	}

	mode := models.Mode(req.Mode)
	if req.Mode == "" {
		mode = models.ModeExec
	}
	workspace := req.Workspace
	if workspace == "" {
		workspace = "."
	}
	task := models.NewTask(req.Text, workspace, mode)

	var inboxID string
	if s.inbox != nil {
		msg, err := s.inbox.Record(workspace, req.Text, string(mode))
		if err != nil {
			return &Response{Status: "error", Error: fmt.Sprintf("recording request: %v", err)}
		}
		inboxID = msg.ID
		if err := s.inbox.SetStatus(inboxID, MessageRunning, ""); err != nil {
			s.logger.Warn("updating inbox message", "id", inboxID, "error", err)
		}
	}

	outcome, err := s.run(ctx, task)
	if err != nil {
		s.logger.Error("session failed", "error", err)
		s.markInbox(inboxID, MessageFailed, err.Error())
		return &Response{InboxID: inboxID, Status: "error", Error: err.Error()}
	}

	resp := &Response{
		InboxID: inboxID,
		Status:  string(outcome.Status),
		Mode:    string(mode),
		Text:    outcomeText(outcome),
	}
	if outcome.Status == models.SessionFailed {
		resp.Error = failureError(outcome)
	}
	s.markInbox(inboxID, inboxStatus(outcome.Status), outcome.AuditLine())
	return resp
}

// isPing reports whether the payload is a liveness probe {"ping": true}.
func isPing(payload any) bool {
	obj, ok := payload.(map[string]any)
	if !ok {
		return false
	}
	ping, ok := obj["ping"].(bool)
	return ok && ping
}

func (s *Server) markInbox(id, status, outcome string) {
	if s.inbox == nil || id == "" {
		return
	}
	if err := s.inbox.SetStatus(id, status, outcome); err != nil {
		s.logger.Warn("updating inbox message", "id", id, "error", err)
	}
}

func inboxStatus(status models.SessionStatus) string {
	if status == models.SessionFailed {
		return MessageFailed
	}
	return MessageDone
}

func outcomeText(outcome models.SessionOutcome) string {
	switch outcome.Status {
	case models.SessionBlocked, models.SessionPlanned:
		return planner.Render(outcome.Plan)
	default:
		return outcome.Trace.Summary()
	}
}

// failureError names what went wrong when an executed plan halted on a
// failed step.
func failureError(outcome models.SessionOutcome) string {
	if msg := outcome.Trace.FirstError(); msg != "" {
		return msg
	}
	return outcome.Trace.Summary()
}
