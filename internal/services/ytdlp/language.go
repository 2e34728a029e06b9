package ytdlp

import (
	"sort"

	"golang.org/x/text/language"
)

// PickCaptionLanguage selects the auto-caption track best matching the
// preferred languages. Available codes are matched as BCP 47 tags; when
// nothing matches well the matcher's fallback (the first parseable track) is
// still returned, since a transcript in a related language beats none. The
// boolean is false only when no usable track exists at all.
func PickCaptionLanguage(available []string, preferred []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	codes := append([]string{}, available...)
	sort.Strings(codes)

	tags := make([]language.Tag, 0, len(codes))
	usable := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		usable = append(usable, code)
	}
	if len(tags) == 0 {
		return "", false
	}

	var prefTags []language.Tag
	for _, pref := range preferred {
		if tag, err := language.Parse(pref); err == nil {
			prefTags = append(prefTags, tag)
		}
	}

	matcher := language.NewMatcher(tags)
	_, index, _ := matcher.Match(prefTags...)
	return usable[index], true
}
