package cartridge

import "time"

// RTC register selectors, as written to 0x4000-0x5FFF.
const (
	rtcSeconds uint8 = 0x08 + iota
	rtcMinutes
	rtcHours
	rtcDaysLow
	rtcDaysHigh
)

const (
	rtcHalt  = 1 << 6
	rtcCarry = 1 << 7
)

// RTC is the MBC3 real time clock. The live counters advance with the
// wall clock supplied by now; the CPU only ever reads the latched copy.
type RTC struct {
	Seconds   uint8
	Minutes   uint8
	Hours     uint8
	Days      uint16 // 9 bits
	Halted    bool
	DayCarry  bool
	Latched   [5]uint8
	LastTick  time.Time
	latchFlag uint8
	now       Clock
}

func newRTC(now Clock) *RTC {
	return &RTC{now: now, LastTick: now(), latchFlag: 0xFF}
}

// update folds the whole seconds elapsed since the last update into the
// live counters.
func (r *RTC) update() {
	now := r.now()
	elapsed := int64(now.Sub(r.LastTick) / time.Second)
	if elapsed <= 0 {
		return
	}
	r.LastTick = r.LastTick.Add(time.Duration(elapsed) * time.Second)
	if r.Halted {
		return
	}

	total := int64(r.Seconds) + int64(r.Minutes)*60 + int64(r.Hours)*3600 + int64(r.Days)*86400 + elapsed
	r.Seconds = uint8(total % 60)
	total /= 60
	r.Minutes = uint8(total % 60)
	total /= 60
	r.Hours = uint8(total % 24)
	total /= 24
	if total >= 512 {
		r.DayCarry = true
		total %= 512
	}
	r.Days = uint16(total)
}

// writeLatch latches the live counters when a 0x00 write is followed by
// a 0x01 write.
func (r *RTC) writeLatch(value uint8) {
	if r.latchFlag == 0x00 && value == 0x01 {
		r.update()
		r.Latched = [5]uint8{r.Seconds, r.Minutes, r.Hours, uint8(r.Days), r.daysHigh()}
	}
	r.latchFlag = value
}

func (r *RTC) daysHigh() uint8 {
	v := uint8(r.Days>>8) & 0x01
	if r.Halted {
		v |= rtcHalt
	}
	if r.DayCarry {
		v |= rtcCarry
	}
	return v
}

func (r *RTC) read(reg uint8) uint8 {
	return r.Latched[reg-rtcSeconds]
}

func (r *RTC) write(reg uint8, value uint8) {
	r.update()
	switch reg {
	case rtcSeconds:
		r.Seconds = value & 0x3F
		r.LastTick = r.now()
	case rtcMinutes:
		r.Minutes = value & 0x3F
	case rtcHours:
		r.Hours = value & 0x1F
	case rtcDaysLow:
		r.Days = r.Days&0x100 | uint16(value)
	case rtcDaysHigh:
		r.Days = r.Days&0xFF | uint16(value&0x01)<<8
		r.Halted = value&rtcHalt != 0
		r.DayCarry = value&rtcCarry != 0
	}
}
