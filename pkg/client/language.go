package client

import "strings"

//////////////////////////////////////////////////////////////////////////////
// TYPES

type language struct {
	name        string
	code, code3 string
}

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Languages recognised by all transcription providers, with the two-letter
// (AssemblyAI, whisper) and three-letter (ElevenLabs) codes
var languages = []language{
	{"arabic", "ar", "ara"},
	{"catalan", "ca", "cat"},
	{"chinese", "zh", "cmn"},
	{"czech", "cs", "ces"},
	{"danish", "da", "dan"},
	{"dutch", "nl", "nld"},
	{"english", "en", "eng"},
	{"finnish", "fi", "fin"},
	{"french", "fr", "fra"},
	{"german", "de", "deu"},
	{"greek", "el", "ell"},
	{"hebrew", "he", "heb"},
	{"hindi", "hi", "hin"},
	{"hungarian", "hu", "hun"},
	{"indonesian", "id", "ind"},
	{"italian", "it", "ita"},
	{"japanese", "ja", "jpn"},
	{"korean", "ko", "kor"},
	{"norwegian", "no", "nor"},
	{"polish", "pl", "pol"},
	{"portuguese", "pt", "por"},
	{"romanian", "ro", "ron"},
	{"russian", "ru", "rus"},
	{"spanish", "es", "spa"},
	{"swedish", "sv", "swe"},
	{"turkish", "tr", "tur"},
	{"ukrainian", "uk", "ukr"},
	{"vietnamese", "vi", "vie"},
}

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LanguageCode returns the two-letter and three-letter codes for a
// language name or code, or empty strings if the language is not recognised
func LanguageCode(v string) (string, string) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, l := range languages {
		if v == l.name || v == l.code || v == l.code3 {
			return l.code, l.code3
		}
	}
	return "", ""
}
