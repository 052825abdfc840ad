package status

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

var syncLabels = Labels{Action: "Syncing images", Noun: "images", Past: "synced"}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"first_of_three", 1, 3, "> Syncing images: 33.33% (1/3) images synced"},
		{"complete", 3, 3, "> Syncing images: 100.00% (3/3) images synced"},
		{"zero_total", 0, 0, "> Syncing images: 0.00% (0/0) images synced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProgress(syncLabels, tt.current, tt.total))
		})
	}
}

func TestReporter_Overwrite(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, syncLabels, true)
	ctx := context.Background()

	r.StartOperation(ctx, 2)
	r.UpdateProgress(ctx)
	r.UpdateProgress(ctx)
	r.FinishOperation(ctx)

	assert.Equal(t,
		"> Syncing images: 50.00% (1/2) images synced\r"+
			"> Syncing images: 100.00% (2/2) images synced. Done!\n",
		buf.String())
	assert.Equal(t, 2, r.Processed())
}

func TestReporter_NoOverwrite(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, syncLabels, false)
	ctx := context.Background()

	r.StartOperation(ctx, 2)
	r.UpdateProgress(ctx)
	r.UpdateProgress(ctx)

	assert.Equal(t,
		"> Syncing images: 50.00% (1/2) images synced\n"+
			"> Syncing images: 100.00% (2/2) images synced. Done!\n",
		buf.String())
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "2/3 images successfully synced!", FormatSummary(syncLabels, 2, 3, 0))
	assert.Equal(t, "1/1 images successfully synced! (2.0 kB reclaimed)", FormatSummary(syncLabels, 1, 1, 2000))
}

func TestRenderFailures(t *testing.T) {
	var buf bytes.Buffer
	RenderFailures(&buf, nil)
	assert.Empty(t, buf.String())

	RenderFailures(&buf, []Failure{{Path: "/p/a.JPG", Err: errors.New("exit 1")}})
	assert.Contains(t, buf.String(), "/p/a.JPG")
	assert.Contains(t, buf.String(), "exit 1")
}
