// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command moore runs a small accumulator circuit and logs the outputs of its
// parts after every tick.
//
// The circuit is made of a toggle (clk) driving a counter (cnt), an adder
// (acc) summing the counter and a register (reg) that loads the sum every
// other tick. Outputs are streamed through an in-memory pubsub topic.
//
// Every flag can also be set with a MOORE_ prefixed environment variable,
// like MOORE_STEPS=32.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/danielorbach/go-component"
	"github.com/db47h/moore"
	"github.com/db47h/moore/mlib"
	"github.com/db47h/moore/probe"
	"github.com/peterbourgon/ff/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/pubsub/mempubsub"
)

var tracer = otel.Tracer("github.com/db47h/moore/cmd/moore")

type config struct {
	bits     int
	steps    int
	parts    string
	level    string
	maxWidth int
	capacity int
}

func main() {
	var cfg config
	fs := flag.NewFlagSet("moore", flag.ExitOnError)
	fs.IntVar(&cfg.bits, "bits", 8, "counter and accumulator width")
	fs.IntVar(&cfg.steps, "steps", 16, "number of ticks to simulate")
	fs.StringVar(&cfg.parts, "probe", "", "comma separated list of parts to log (default all)")
	fs.StringVar(&cfg.level, "log-level", "info", "log level (debug, info, warn, error)")
	fs.IntVar(&cfg.maxWidth, "max-width", moore.DefaultMaxWidth, "maximum bit vector width")
	fs.IntVar(&cfg.capacity, "capacity", 0, "maximum number of automata (0 = unlimited)")
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("MOORE")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.steps <= 0 {
		fmt.Fprintln(os.Stderr, "moore: -steps must be positive")
		os.Exit(2)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.level)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	component.RunProc(func(l *component.L) {
		logger := component.Logger(l.Context())

		c, err := build(cfg, logger)
		if err != nil {
			l.Fatal(err)
		}
		var parts []string
		if cfg.parts != "" {
			for _, p := range strings.Split(cfg.parts, ",") {
				parts = append(parts, strings.TrimSpace(p))
			}
		} else {
			parts = c.Parts()
		}

		topic := mempubsub.NewTopic()
		sub := mempubsub.NewSubscription(topic, time.Minute)
		p, err := probe.New(c, topic, parts...)
		if err != nil {
			l.Fatal(err)
		}

		want := cfg.steps * len(parts)
		l.Fork("samples", probe.Stream(sub, func(ctx context.Context, s probe.Sample) error {
			logger.InfoContext(ctx, "Sample", slog.Uint64("tick", s.Tick), slog.String("part", s.Part), slog.Uint64("value", s.Bits().Uint64()))
			if want--; want == 0 {
				return probe.ErrStop
			}
			return nil
		}))

		l.Go("simulation", func(l *component.L) {
			ctx, span := tracer.Start(l.Context(), "simulate", trace.WithAttributes(
				attribute.Int("moore.steps", cfg.steps),
				attribute.Int("moore.bits", cfg.bits),
			))
			defer span.End()

			for i := 0; i < cfg.steps; i++ {
				if err := p.Tick(ctx); err != nil {
					span.SetStatus(codes.Error, err.Error())
					l.Fatalf("tick %d: %+v", i, err)
				}
			}
			logger.Debug("Simulation complete", slog.Int("steps", cfg.steps), slog.Uint64("ticks", c.Network().Steps()))
		})
	})
}

// build returns the accumulator circuit:
//
//	clk -> cnt -> acc -> reg
//	               ^      |
//	               +------+
//
// reg loads the sum whenever clk is high.
//
func build(cfg config, logger *slog.Logger) (*moore.Circuit, error) {
	n := moore.NewNetwork(
		moore.WithName("moore"),
		moore.WithLogger(logger),
		moore.WithMaxWidth(cfg.maxWidth),
		moore.WithCapacity(cfg.capacity),
	)
	c := moore.NewCircuit(n)
	for _, p := range []struct {
		name string
		spec *moore.Spec
	}{
		{"clk", mlib.Toggle()},
		{"cnt", mlib.Counter(cfg.bits)},
		{"acc", mlib.AdderN(cfg.bits)},
		{"reg", mlib.Register(cfg.bits)},
	} {
		if _, err := c.Add(p.name, p.spec, nil); err != nil {
			return nil, err
		}
	}
	b := cfg.bits
	err := c.Wire(fmt.Sprintf("cnt.in = clk.out,"+
		"acc.in[0..%d] = cnt.out, acc.in[%d..%d] = reg.out,"+
		"reg.in[0..%d] = acc.out[0..%d], reg.in[%d] = clk.out",
		b-1, b, 2*b-1,
		b-1, b-1, b))
	if err != nil {
		return nil, err
	}
	return c, nil
}
