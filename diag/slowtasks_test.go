package diag_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nwcmb/taskpool/diag"
)

func TestSlowUnitsTracksKLongestSamples(t *testing.T) {
	chk := require.New(t)

	su := diag.NewSlowUnits(2)
	wrap := su.Wrap("sleepy", func(ctx context.Context, unitIndex uint32, payload any) error {
		time.Sleep(time.Duration(unitIndex+1) * time.Millisecond)
		return nil
	})

	for i := uint32(0); i < 5; i++ {
		chk.NoError(wrap(context.Background(), i, nil))
	}

	slowest := su.Slowest()
	chk.Len(slowest, 2)
	chk.Equal(uint32(4), slowest[0].Unit)
	chk.Equal(uint32(3), slowest[1].Unit)
}
