package cache

import (
	"time"
)

// UntilNextDaily は now から次の hour 時（loc基準）までの期間を返します。
// ちょうどその時刻の場合は24時間後を返します。
func UntilNextDaily(now time.Time, hour int, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)

	// 今日の時刻を過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}

// DailyExpiry は呼び出し時点から次の hour 時までのTTLを返す関数を作成します。
// tz が読み込めない場合はUTCを使用します。
func DailyExpiry(hour int, tz string) func() time.Duration {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return func() time.Duration {
		return UntilNextDaily(time.Now(), hour, loc)
	}
}
