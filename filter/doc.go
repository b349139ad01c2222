// Package filter evaluates expr-lang expressions against movies and TV shows.
//
// Expressions see one title at a time through these variables:
//
//	ID, Title, OriginalTitle, Kind, Overview, Popularity, VoteAverage,
//	VoteCount, ReleaseDate, Language, HasPoster, Adult
//
// and these helpers:
//
//	year()                       release or first-air year, 0 when unknown
//	containsText(s, sub)         case-insensitive substring match
//	hasPrefix(s, p), hasSuffix(s, p)  case-insensitive
//	lower(s), upper(s)
//	parseDate("2006-01-02"), daysSince(t), daysAgo(n), yearsAgo(n), now()
//
// Examples:
//
//	year() >= 2024 and HasPoster
//	Kind == "tv" and VoteAverage >= 8
//	containsText(Title, "star") and Popularity > 50
//	Title startsWith "The"      (expr operator, case-sensitive)
//	daysSince(parseDate(ReleaseDate)) < 30
//
// Filters only narrow loaded pages. They never change what is fetched.
package filter
