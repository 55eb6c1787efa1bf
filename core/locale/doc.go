// Package locale keeps the display language preference.
//
// The chosen language is persisted under kv.KeyCurrentLang and broadcast to
// subscribers, which re-render direction-sensitive parts of the page (IsRTL)
// and prices (FormatPrice). Only the supported languages are accepted; Match
// picks the best supported language for an Accept-Language header.
package locale
