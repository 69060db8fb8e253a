package cutebot

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServoAngle(t *testing.T) {
	testCases := []struct {
		name   string
		st     ServoType
		servo  ServoID
		angle  float64
		expect []byte
	}{
		{"default 180", 0, S1, 90, []byte{1, 90}},
		{"270 mapped", ServoType270, S2, 135, []byte{2, 90}},
		{"270 truncated", ServoType270, S3, 100, []byte{3, 66}},
		{"360 mapped", ServoType360, S4, 360, []byte{4, 180}},
		{"180 full", ServoType180, S1, 180, []byte{1, 180}},
		{"beyond range wraps", ServoType180, S1, 300, []byte{1, 44}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &testTransport{}
			s := &Servos{Transport: tr, Calibration: &Calibration{}}
			if tc.st != 0 {
				require.NoError(t, s.SetServoType(tc.servo, tc.st))
			}
			require.NoError(t, s.ServoAngle(context.Background(), tc.servo, tc.angle))
			require.Equal(t, []sentFrame{{code: CmdServo, params: tc.expect}}, tr.sent)
		})
	}
}

func TestServoValidation(t *testing.T) {
	tr := &testTransport{}
	s := &Servos{Transport: tr, Calibration: &Calibration{}}
	require.Equal(t, ErrInvalidServo, s.SetServoType(0, ServoType270))
	require.Equal(t, ErrInvalidServo, s.SetServoType(5, ServoType270))
	require.Equal(t, ErrInvalidServoType, s.SetServoType(S1, 90))
	require.Equal(t, ErrInvalidServo, s.ServoAngle(context.Background(), 5, 90))
	require.Empty(t, tr.sent)
	require.Equal(t, ServoType180, s.Calibration.Get(S1))
}

func TestCalibrationPerInstance(t *testing.T) {
	var a, b Calibration
	require.NoError(t, a.Set(S2, ServoType360))
	require.Equal(t, ServoType360, a.Get(S2))
	require.Equal(t, ServoType180, b.Get(S2))
	require.Equal(t, ServoType180, a.Get(S1))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id ServoID) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				a.Set(id, ServoType270)
				a.Get(id)
			}
		}(ServoID(i + 1))
	}
	wg.Wait()
	for id := S1; id <= S4; id++ {
		require.Equal(t, ServoType270, a.Get(id))
	}
}
