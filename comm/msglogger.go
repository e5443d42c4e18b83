package comm

import (
	"log"

	"github.com/sarchlab/qtsim/sim/hooking"
)

// MsgLogger is a hook that logs messages as they are sent and delivered.
type MsgLogger struct {
	logger *log.Logger
}

// NewMsgLogger creates a MsgLogger writing into logger.
func NewMsgLogger(logger *log.Logger) *MsgLogger {
	return &MsgLogger{logger: logger}
}

// Func writes one line per send and per delivery.
func (h *MsgLogger) Func(ctx hooking.HookCtx) {
	msg, ok := ctx.Item.(*TeleportationMessage)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosMsgSent:
		h.logger.Printf("msg %s %s -> %s sent @ %d, outcome %s, due @ %d",
			msg.ID, msg.Src, msg.Dst, msg.SentAt, msg.Outcome, ctx.Detail)
	case HookPosMsgDelivered:
		h.logger.Printf("msg %s %s -> %s delivered",
			msg.ID, msg.Src, msg.Dst)
	}
}
