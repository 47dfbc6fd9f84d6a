package schedule

import (
	"testing"
	"time"
)

var testZone = time.FixedZone("EST", -5*60*60)

// Monday, January 1 2024, 10:00 local.
var testRef = time.Date(2024, time.January, 1, 10, 0, 0, 0, testZone)

func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, testZone)
}

func TestParseScenarios(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		cleaned string
		phrase  string
		want    time.Time
	}{
		{
			name:    "tomorrow with time",
			input:   "Buy milk tomorrow 9am",
			cleaned: "Buy milk",
			phrase:  "tomorrow 9am",
			want:    localTime(2024, time.January, 2, 9, 0),
		},
		{
			name:    "preserves phrase casing",
			input:   "Buy milk Tomorrow 9AM",
			cleaned: "Buy milk",
			phrase:  "Tomorrow 9AM",
			want:    localTime(2024, time.January, 2, 9, 0),
		},
		{
			name:    "tonight defaults to evening",
			input:   "Call mom tonight",
			cleaned: "Call mom",
			phrase:  "tonight",
			want:    localTime(2024, time.January, 1, 20, 0),
		},
		{
			name:    "weekday defaults to five pm",
			input:   "Pay rent friday",
			cleaned: "Pay rent",
			phrase:  "friday",
			want:    localTime(2024, time.January, 5, 17, 0),
		},
		{
			name:    "bare weekday includes today",
			input:   "standup monday",
			cleaned: "standup",
			phrase:  "monday",
			want:    localTime(2024, time.January, 1, 17, 0),
		},
		{
			name:    "next weekday skips today",
			input:   "Dentist next monday at 3:30pm",
			cleaned: "Dentist",
			phrase:  "next monday at 3:30pm",
			want:    localTime(2024, time.January, 8, 15, 30),
		},
		{
			name:    "abbreviated weekday with modifier",
			input:   "ship it on sat",
			cleaned: "ship it",
			phrase:  "on sat",
			want:    localTime(2024, time.January, 6, 17, 0),
		},
		{
			name:    "last weekday is in the past",
			input:   "review last friday",
			cleaned: "review",
			phrase:  "last friday",
			want:    localTime(2023, time.December, 29, 17, 0),
		},
		{
			name:    "time later today",
			input:   "report due 3pm",
			cleaned: "report due",
			phrase:  "3pm",
			want:    localTime(2024, time.January, 1, 15, 0),
		},
		{
			name:    "elapsed time rolls to tomorrow",
			input:   "wake up 8am",
			cleaned: "wake up",
			phrase:  "8am",
			want:    localTime(2024, time.January, 2, 8, 0),
		},
		{
			name:    "midnight meridiem",
			input:   "call 12am",
			cleaned: "call",
			phrase:  "12am",
			want:    localTime(2024, time.January, 2, 0, 0),
		},
		{
			name:    "named time",
			input:   "lunch at noon",
			cleaned: "lunch",
			phrase:  "at noon",
			want:    localTime(2024, time.January, 1, 12, 0),
		},
		{
			name:    "time then date",
			input:   "meet @ 14:30 tomorrow.",
			cleaned: "meet.",
			phrase:  "@ 14:30 tomorrow",
			want:    localTime(2024, time.January, 2, 14, 30),
		},
		{
			name:    "month name",
			input:   "Renew passport on March 3",
			cleaned: "Renew passport",
			phrase:  "on March 3",
			want:    localTime(2024, time.March, 3, 17, 0),
		},
		{
			name:    "day before month name",
			input:   "party the 4th of july",
			cleaned: "party",
			phrase:  "the 4th of july",
			want:    localTime(2024, time.July, 4, 17, 0),
		},
		{
			name:    "explicit year",
			input:   "taxes apr 15, 2025 at 9am",
			cleaned: "taxes",
			phrase:  "apr 15, 2025 at 9am",
			want:    localTime(2025, time.April, 15, 9, 0),
		},
		{
			name:    "slash date",
			input:   "xmas 12/25",
			cleaned: "xmas",
			phrase:  "12/25",
			want:    localTime(2024, time.December, 25, 17, 0),
		},
		{
			name:    "iso date",
			input:   "launch 2024-02-29",
			cleaned: "launch",
			phrase:  "2024-02-29",
			want:    localTime(2024, time.February, 29, 17, 0),
		},
		{
			name:    "relative hours are exact",
			input:   "check in 2 hours",
			cleaned: "check",
			phrase:  "in 2 hours",
			want:    localTime(2024, time.January, 1, 12, 0),
		},
		{
			name:    "relative days use default hour",
			input:   "follow up in a week",
			cleaned: "follow up",
			phrase:  "in a week",
			want:    localTime(2024, time.January, 8, 17, 0),
		},
		{
			name:    "relative days with time",
			input:   "follow up in 3 days at 10:15am",
			cleaned: "follow up",
			phrase:  "in 3 days at 10:15am",
			want:    localTime(2024, time.January, 4, 10, 15),
		},
		{
			name:    "next month",
			input:   "plan trip next month!",
			cleaned: "plan trip!",
			phrase:  "next month",
			want:    localTime(2024, time.February, 1, 17, 0),
		},
		{
			name:    "only the first phrase is used",
			input:   "move tomorrow and friday",
			cleaned: "move and friday",
			phrase:  "tomorrow",
			want:    localTime(2024, time.January, 2, 17, 0),
		},
		{
			name:    "night after a date",
			input:   "tomorrow night",
			cleaned: "",
			phrase:  "tomorrow night",
			want:    localTime(2024, time.January, 2, 20, 0),
		},
		{
			name:    "morning after a weekday rolls to next week",
			input:   "monday morning standup",
			cleaned: "standup",
			phrase:  "monday morning",
			want:    localTime(2024, time.January, 8, 9, 0),
		},
		{
			name:    "bare hour tonight is evening",
			input:   "call mom tonight at 9",
			cleaned: "call mom",
			phrase:  "tonight at 9",
			want:    localTime(2024, time.January, 1, 21, 0),
		},
		{
			name:    "bare hour alone",
			input:   "standup at 11",
			cleaned: "standup",
			phrase:  "at 11",
			want:    localTime(2024, time.January, 1, 11, 0),
		},
		{
			name:    "daypart then exact time",
			input:   "pick up kids friday afternoon at 3",
			cleaned: "pick up kids",
			phrase:  "friday afternoon at 3",
			want:    localTime(2024, time.January, 5, 15, 0),
		},
		{
			name:    "prefixed daypart alone",
			input:   "walk the dog this evening",
			cleaned: "walk the dog",
			phrase:  "this evening",
			want:    localTime(2024, time.January, 1, 20, 0),
		},
		{
			name:    "weekday with elapsed time rolls to next week",
			input:   "sync monday 9am",
			cleaned: "sync",
			phrase:  "monday 9am",
			want:    localTime(2024, time.January, 8, 9, 0),
		},
		{
			name:    "keeps tags",
			input:   "Ship #release tomorrow",
			cleaned: "Ship #release",
			phrase:  "tomorrow",
			want:    localTime(2024, time.January, 2, 17, 0),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Parse(tc.input, testRef)
			if result.CleanedText != tc.cleaned {
				t.Fatalf("expected cleaned text %q, got %q", tc.cleaned, result.CleanedText)
			}
			if result.ScheduleText == nil || result.ScheduledAt == nil {
				t.Fatalf("expected schedule for %q", tc.input)
			}
			if *result.ScheduleText != tc.phrase {
				t.Fatalf("expected phrase %q, got %q", tc.phrase, *result.ScheduleText)
			}
			if !result.ScheduledAt.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, result.ScheduledAt.In(testZone))
			}
			if result.ScheduledAt.Location() != time.UTC {
				t.Fatalf("expected UTC instant, got %s", result.ScheduledAt.Location())
			}
		})
	}
}

func TestParseWithoutPhrase(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "   ", want: ""},
		{input: "Buy   milk", want: "Buy milk"},
		{input: "call mom , then dad", want: "call mom, then dad"},
		{input: "sun hat", want: "sun hat"},
		{input: "wed plans", want: "wed plans"},
		{input: "buy 5 amps", want: "buy 5 amps"},
		{input: "Submit 2024-02-30", want: "Submit 2024-02-30"},
		{input: "fix #bug42 now", want: "fix #bug42 now"},
		{input: "read chapter 12", want: "read chapter 12"},
		{input: "2 mars bars", want: "2 mars bars"},
		{input: "movie night", want: "movie night"},
		{input: "good morning team", want: "good morning team"},
	}

	for _, tc := range cases {
		result := Parse(tc.input, testRef)
		if result.CleanedText != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, result.CleanedText)
		}
		if result.Scheduled() || result.ScheduleText != nil {
			t.Fatalf("expected no schedule for %q, got %v", tc.input, *result.ScheduleText)
		}
	}
}

func TestParseIsIdempotentOnCleanText(t *testing.T) {
	inputs := []string{
		"Buy milk tomorrow 9am",
		"Renew passport on March 3",
		"  Ship #release   notes ,   please ",
		"meet @ 14:30 tomorrow.",
		"tomorrow night",
		"call mom tonight at 9",
	}
	for _, input := range inputs {
		first := Parse(input, testRef)
		second := Parse(first.CleanedText, testRef)
		if second.CleanedText != first.CleanedText {
			t.Fatalf("expected %q unchanged, got %q", first.CleanedText, second.CleanedText)
		}
		if second.Scheduled() {
			t.Fatalf("expected no schedule in %q", first.CleanedText)
		}
	}
}

func TestParserCustomHours(t *testing.T) {
	parser := Parser{DefaultHour: 9, EveningHour: 21}

	result := parser.Parse("gym tomorrow", testRef)
	if want := localTime(2024, time.January, 2, 9, 0); !result.ScheduledAt.Equal(want) {
		t.Fatalf("expected %s, got %s", want, result.ScheduledAt.In(testZone))
	}

	result = parser.Parse("movie Tonight", testRef)
	if want := localTime(2024, time.January, 1, 21, 0); !result.ScheduledAt.Equal(want) {
		t.Fatalf("expected %s, got %s", want, result.ScheduledAt.In(testZone))
	}
}

func TestParseZeroesSeconds(t *testing.T) {
	ref := time.Date(2024, time.January, 1, 10, 0, 42, 123456789, testZone)
	result := Parse("stretch in 20 minutes", ref)
	want := localTime(2024, time.January, 1, 10, 20)
	if !result.ScheduledAt.Equal(want) {
		t.Fatalf("expected %s, got %s", want, result.ScheduledAt.In(testZone))
	}
}

func TestParseYearRollover(t *testing.T) {
	ref := time.Date(2024, time.December, 30, 9, 0, 0, 0, testZone)
	result := Parse("party jan 2", ref)
	if want := localTime(2025, time.January, 2, 17, 0); !result.ScheduledAt.Equal(want) {
		t.Fatalf("expected %s, got %s", want, result.ScheduledAt.In(testZone))
	}
}
