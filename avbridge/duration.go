// duration.go converts between libav timestamps and time.Duration.

package avbridge

import (
	"math"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avtransform/types"
)

const (
	// see https://ffmpeg.org/doxygen/trunk/group__lavu__time.html#ga2eaefe702f95f619ea6f2d08afa01be1
	avNoPTSValue = math.MinInt64
)

func Duration(t int64, timeBase astiav.Rational) time.Duration {
	if t == avNoPTSValue || timeBase.Den() == 0 {
		return 0
	}
	return time.Duration(math.Round(float64(t) * float64(timeBase.Num()) * float64(time.Second) / float64(timeBase.Den())))
}

func FromDuration(d time.Duration, timeBase astiav.Rational) int64 {
	if timeBase.Num() == 0 {
		return 0
	}
	return int64(math.Round(d.Seconds() / timeBase.Float64()))
}

func RationalToAstiav(r types.Rational) astiav.Rational {
	return astiav.NewRational(r.Num, r.Den)
}

func RationalFromAstiav(r astiav.Rational) types.Rational {
	return types.Rational{Num: r.Num(), Den: r.Den()}
}
