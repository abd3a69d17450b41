package localtime

import "time"

// IST is UTC+05:30. A fixed zone avoids depending on the host tzdata.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Breakdown is the structured local-time representation every serializer
// renders instead of a raw timestamp.
type Breakdown struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

// InIST converts t to IST and splits it into date and time parts. With
// noonFormat the time is rendered on a 12-hour clock with AM/PM.
func InIST(t time.Time, noonFormat bool) Breakdown {
	local := t.In(IST)
	layout := "15:04:05"
	if noonFormat {
		layout = "03:04:05 PM"
	}
	return Breakdown{
		Date:     local.Format("02-01-2006"),
		Time:     local.Format(layout),
		Timezone: "IST",
	}
}
