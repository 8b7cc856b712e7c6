// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package probe streams the outputs of circuit parts to a pubsub topic.
//
// A Probe samples the outputs of selected parts of a moore.Circuit and sends
// one gob encoded Sample per part to a gocloud.dev pubsub topic. Consumers
// decode them with Decode or process them with Stream.
//
package probe

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"log/slog"
	"strconv"

	"github.com/danielorbach/go-component"
	"github.com/db47h/moore"
	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/pubsub"
	"golang.org/x/sync/errgroup"
)

// ErrStop can be returned by a Handler to end a Stream without error.
//
var ErrStop = errors.New("stop streaming")

var tracer = otel.Tracer("github.com/db47h/moore/probe")

// A Sample is the output of a part after a given number of ticks.
//
type Sample struct {
	Tick  uint64
	Part  string
	Width int
	Words []uint64
}

// Bits returns the sampled output as a bit vector.
//
func (s Sample) Bits() moore.Bits {
	return moore.MakeBits(s.Width, s.Words...)
}

func (s Sample) String() string {
	return s.Part + "@" + strconv.FormatUint(s.Tick, 10) + " = " + s.Bits().String()
}

// A Probe publishes the outputs of circuit parts.
//
type Probe struct {
	c     *moore.Circuit
	parts []string
	topic *pubsub.Topic
}

// New returns a Probe sampling the given parts of c, or all of its parts if
// none is given, and sending the samples to topic.
//
func New(c *moore.Circuit, topic *pubsub.Topic, parts ...string) (*Probe, error) {
	if len(parts) == 0 {
		parts = c.Parts()
	}
	for _, p := range parts {
		if _, ok := c.Handle(p); !ok {
			return nil, pkgerrors.Wrapf(moore.ErrInvalidArgument, "probe: unknown part %q", p)
		}
	}
	return &Probe{c: c, parts: parts, topic: topic}, nil
}

// Publish sends one sample per probed part, tagged with the number of ticks
// the circuit's network went through so far.
//
func (p *Probe) Publish(ctx context.Context) (err error) {
	tick := p.c.Network().Steps()
	ctx, span := tracer.Start(ctx, "probe.Publish", trace.WithAttributes(
		attribute.Int64("moore.tick", int64(tick)),
		attribute.Int("moore.parts", len(p.parts)),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	msgs := make([]*pubsub.Message, 0, len(p.parts))
	for _, name := range p.parts {
		out, err := p.c.Output(name)
		if err != nil {
			return pkgerrors.Wrap(err, "probe")
		}
		s := Sample{Tick: tick, Part: name, Width: out.Width(), Words: out.Words()}
		var b bytes.Buffer
		if err := gob.NewEncoder(&b).Encode(s); err != nil {
			return pkgerrors.Wrapf(err, "encode %s", name)
		}
		msgs = append(msgs, &pubsub.Message{Body: b.Bytes(), Metadata: map[string]string{"part": name}})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, msg := range msgs {
		g.Go(func() error {
			return pkgerrors.Wrapf(p.topic.Send(ctx, msg), "send %s", msg.Metadata["part"])
		})
	}
	return g.Wait()
}

// Tick steps the circuit once then publishes the new outputs.
//
func (p *Probe) Tick(ctx context.Context) error {
	if err := p.c.Step(); err != nil {
		return err
	}
	return p.Publish(ctx)
}

// Decode decodes a sample from a message body.
//
func Decode(msg *pubsub.Message) (Sample, error) {
	var s Sample
	if err := gob.NewDecoder(bytes.NewReader(msg.Body)).Decode(&s); err != nil {
		return Sample{}, pkgerrors.Wrap(err, "decode sample")
	}
	return s, nil
}

// A Handler processes a decoded sample.
//
type Handler func(ctx context.Context, s Sample) error

// Stream returns a component.Proc that receives samples from sub and passes
// them to h until the component is stopped or h returns ErrStop. Messages are
// acknowledged once received, even if they fail to decode.
//
func Stream(sub *pubsub.Subscription, h Handler) component.Proc {
	return func(l *component.L) {
		logger := component.Logger(l.Context())
		for l.Continue() {
			msg, err := sub.Receive(l.GraceContext())
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					return
				}
				l.Fatalf("receive sample: %v", err)
			}
			msg.Ack()

			s, err := Decode(msg)
			if err != nil {
				logger.Error("Dropping undecodable sample", slog.Any("error", err), slog.String("part", msg.Metadata["part"]))
				continue
			}
			if err = h(l.Context(), s); err != nil {
				if errors.Is(err, ErrStop) {
					return
				}
				l.Fatalf("process sample %v: %v", s, err)
			}
		}
	}
}
