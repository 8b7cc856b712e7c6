package probe_test

import (
	"context"
	"time"

	"github.com/danielorbach/go-component"
	"github.com/db47h/moore"
	"github.com/db47h/moore/mlib"
	"github.com/db47h/moore/probe"
	"gocloud.dev/pubsub/mempubsub"
)

// This example streams the output of a counter while it runs. It is compiled
// but not executed.
func ExampleStream() {
	c := moore.NewCircuit(nil)
	c.Add("cnt", mlib.Counter(4), nil)
	c.SetInput("cnt", 1)

	topic := mempubsub.NewTopic()
	sub := mempubsub.NewSubscription(topic, time.Minute)
	p, err := probe.New(c, topic)
	if err != nil {
		panic(err)
	}

	component.RunProc(func(l *component.L) {
		received := 0
		l.Fork("print samples", probe.Stream(sub, func(ctx context.Context, s probe.Sample) error {
			l.Logf("%v", s)
			if received++; received == 10 {
				return probe.ErrStop
			}
			return nil
		}))
		l.Go("simulation", func(l *component.L) {
			for i := 0; i < 10; i++ {
				if err := p.Tick(l.Context()); err != nil {
					l.Fatal(err)
				}
			}
		})
	})
}
