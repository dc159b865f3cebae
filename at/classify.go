package at

import "strings"

// Classifier decides whether a line belongs to a family of result codes
// described by a bare keyword table and a tag table.
type Classifier struct {
	Keywords Table
	Tags     Table
}

var (
	notifications = Classifier{Keywords: NotificationKeywords, Tags: NotificationTags}
	finals        = Classifier{Keywords: FinalKeywords, Tags: FinalTags}
)

// Match reports whether line is a member of the family. A line that starts
// with the marker and has a separator after it is looked up by tag only;
// every other line, including a marker line without a separator, is looked
// up as a whole in the keyword table.
func (c Classifier) Match(line string) (Notification, bool) {
	if len(line) > 0 && line[0] == Marker {
		if i := strings.IndexByte(line[1:], Separator); i >= 0 {
			tag := line[1 : i+1]
			if !c.Tags.Contains(tag) {
				return Notification{}, false
			}
			return Notification{
				Line:    line,
				Tag:     tag,
				Payload: strings.TrimSpace(line[i+2:]),
			}, true
		}
	}
	if !c.Keywords.Contains(line) {
		return Notification{}, false
	}
	return Notification{Line: line}, true
}

// Classify reports whether line is an unsolicited notification.
func Classify(line string) (Notification, bool) {
	return notifications.Match(line)
}

// IsFinal reports whether line is a final result code such as OK, ERROR or
// "+CME ERROR: 10".
func IsFinal(line string) bool {
	_, ok := finals.Match(line)
	return ok
}
