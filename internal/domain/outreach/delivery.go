package outreach

// Message is a single outbound email handed to a mail transport.
type Message struct {
	From    string
	To      string
	Cc      []string
	Subject string
	Body    string
}

// Recipients returns the envelope recipients: To followed by Cc.
func (m Message) Recipients() []string {
	return append([]string{m.To}, m.Cc...)
}

// SendResult records a failed delivery.
type SendResult struct {
	Index int
	Name  string
	Email string
	Error string
}

// SendReport aggregates one send run.
type SendReport struct {
	Total     int
	Succeeded int
	Failures  []SendResult
	Cancelled bool
}

func (r *SendReport) Failed() int {
	return len(r.Failures)
}
