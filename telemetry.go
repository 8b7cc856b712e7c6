// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/db47h/moore")

// Network operations never block and take no context; metrics are recorded
// against this one.
var bg = context.Background()

const (
	// networkName is the attribute key associating each record with the
	// network it was recorded for (see WithName).
	networkName = "network"
)

var (
	// stepCount counts successful Step calls.
	stepCount metric.Int64Counter
	// stepBatch records the number of automata listed in each Step call.
	stepBatch metric.Int64Histogram
	// stepFailures counts failed Step calls.
	stepFailures metric.Int64Counter
	// automataLive tracks the number of live automata across all networks.
	automataLive metric.Int64UpDownCounter
)

func init() {
	var err error
	stepCount, err = meter.Int64Counter(
		"moore.step.count",
		metric.WithDescription("The number of successful simulation steps."),
	)
	if err != nil {
		panic("moore: failed to init 'moore.step.count' instrument")
	}
	stepBatch, err = meter.Int64Histogram(
		"moore.step.batch",
		metric.WithDescription("The number of automata listed in a single simulation step."),
	)
	if err != nil {
		panic("moore: failed to init 'moore.step.batch' instrument")
	}
	stepFailures, err = meter.Int64Counter(
		"moore.step.failures",
		metric.WithDescription("The number of simulation steps that have failed."),
	)
	if err != nil {
		panic("moore: failed to init 'moore.step.failures' instrument")
	}
	automataLive, err = meter.Int64UpDownCounter(
		"moore.automata",
		metric.WithDescription("The number of live automata."),
	)
	if err != nil {
		panic("moore: failed to init 'moore.automata' instrument")
	}
}

// measureStep records a Step call of the given batch size.
//
func (n *Network) measureStep(batch int, succeeded bool) {
	opt := metric.WithAttributeSet(n.attrs)
	if succeeded {
		stepCount.Add(bg, 1, opt)
		stepBatch.Record(bg, int64(batch), opt)
	} else {
		stepFailures.Add(bg, 1, opt)
	}
}
