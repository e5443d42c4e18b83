package comm

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/timing"
	"github.com/sarchlab/qtsim/tracing"
)

// ErrNoEndpoint is returned when a message is sent over a channel with nothing
// plugged in.
var ErrNoEndpoint = errors.New("comm: channel has no endpoint")

// Hook positions raised by the channel. The hook item is the message.
var (
	HookPosMsgSent      = &hooking.HookPos{Name: "MsgSent"}
	HookPosMsgDelivered = &hooking.HookPos{Name: "MsgDelivered"}
)

// ClassicalChannel is a point-to-point link with a fixed propagation delay.
// A message sent at T is delivered by an event at T+delay.
type ClassicalChannel struct {
	*hooking.HookableBase

	name     string
	engine   timing.EventScheduler
	delay    timing.VTimeInPS
	endpoint Endpoint

	sent      int
	delivered int
}

// Name returns the name of the channel.
func (c *ClassicalChannel) Name() string {
	return c.name
}

// Delay returns the propagation delay.
func (c *ClassicalChannel) Delay() timing.VTimeInPS {
	return c.delay
}

// PlugIn attaches the endpoint that receives every message.
func (c *ClassicalChannel) PlugIn(endpoint Endpoint) {
	c.endpoint = endpoint
}

// Sent returns the number of messages accepted by Send.
func (c *ClassicalChannel) Sent() int {
	return c.sent
}

// Delivered returns the number of messages handed to the endpoint.
func (c *ClassicalChannel) Delivered() int {
	return c.delivered
}

// Send accepts msg at time at and schedules its delivery at at+delay.
func (c *ClassicalChannel) Send(
	msg *TeleportationMessage,
	at timing.VTimeInPS,
) error {
	if c.endpoint == nil {
		return fmt.Errorf("%w: %s", ErrNoEndpoint, c.name)
	}

	err := c.engine.Schedule(timing.ScheduledEvent{
		Event:   &DeliverEvent{Msg: msg, DueAt: at + c.delay},
		Time:    at + c.delay,
		Handler: c,
	})
	if err != nil {
		return err
	}

	c.sent++
	tracing.StartTask(msg.ID, "", c, tracing.KindClassicalMsg,
		msg.Src+"->"+msg.Dst, at, msg)
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosMsgSent,
		Item:   msg,
		Detail: at + c.delay,
	})

	return nil
}

// Handle delivers the message carried by a DeliverEvent.
func (c *ClassicalChannel) Handle(event any) error {
	switch e := event.(type) {
	case *DeliverEvent:
		return c.deliver(e)
	default:
		return fmt.Errorf("comm: unknown event type: %T", event)
	}
}

func (c *ClassicalChannel) deliver(e *DeliverEvent) error {
	c.delivered++
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosMsgDelivered,
		Item:   e.Msg,
	})
	tracing.EndTask(e.Msg.ID, c, e.DueAt)

	return c.endpoint.OnMessageDelivered(e.Msg)
}
