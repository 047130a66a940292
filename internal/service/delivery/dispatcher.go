package delivery

import (
	"context"

	"go.uber.org/zap"
)

// Answerer produces the answer for one question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Submitter schedules background work; *Pool implements it.
type Submitter interface {
	Submit(task Task) error
}

// Messages holds the fixed notices sent to users.
type Messages struct {
	Ack   string
	Error string
}

// Dispatcher acknowledges inbound questions straight away and completes the
// real answer on the worker pool.
type Dispatcher struct {
	answerer  Answerer
	messenger Messenger
	pool      Submitter
	messages  Messages
	logger    *zap.Logger
}

// NewDispatcher wires the dispatcher's collaborators.
func NewDispatcher(answerer Answerer, messenger Messenger, pool Submitter, messages Messages, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		answerer:  answerer,
		messenger: messenger,
		pool:      pool,
		messages:  messages,
		logger:    logger,
	}
}

// HandleText acknowledges the event through its reply token, then schedules
// answering and delivery. It never blocks on the completion call.
func (d *Dispatcher) HandleText(ctx context.Context, target Target, question string) {
	// Recipient ids identify users, so they stay out of the default log levels.
	logger := d.logger.With(zap.String("source", string(target.Kind)))
	logger.Debug("text event received", zap.String("recipient", target.RecipientID))

	if err := d.messenger.TryReply(ctx, target.ReplyToken, d.messages.Ack); err != nil {
		logger.Warn("acknowledgement reply failed", zap.Error(err))
	}

	err := d.pool.Submit(func(taskCtx context.Context) {
		d.answerAndDeliver(taskCtx, logger, target, question)
	})
	if err != nil {
		logger.Error("dropping event, background task not scheduled", zap.Error(err))
	}
}

func (d *Dispatcher) answerAndDeliver(ctx context.Context, logger *zap.Logger, target Target, question string) {
	text, err := d.answerer.Answer(ctx, question)
	if err != nil {
		logger.Error("answer failed, sending apology", zap.Error(err))
		text = d.messages.Error
	}

	if err := Deliver(ctx, d.messenger, target, text); err != nil {
		logger.Error("delivery failed, message dropped", zap.Error(err))
		return
	}
	logger.Debug("answer delivered")
}
