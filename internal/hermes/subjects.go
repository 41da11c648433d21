package hermes

import "time"

const (
	StreamName   = "PROCURE_EVENTS"
	StreamMaxAge = "720h" // 30 days

	PublishTimeout = 2 * time.Second
)

func SubjectSessionCreated(sessionID string) string { return "procure.session." + sessionID + ".created" }
func SubjectSessionContext(sessionID string) string { return "procure.session." + sessionID + ".context" }
func SubjectSessionExpired(sessionID string) string { return "procure.session." + sessionID + ".expired" }

func SubjectMatrixEvaluated(sessionID string) string { return "procure.matrix." + sessionID + ".evaluated" }
func SubjectMatrixExported(sessionID string) string  { return "procure.matrix." + sessionID + ".exported" }
