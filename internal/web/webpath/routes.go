package webpath

const (
	Home = "/"

	Api                   = "/api"
	ApiTiers              = Api + "/tiers"
	ApiMatches            = Api + "/matches"
	ApiRatings            = Api + "/ratings"
	ApiRatingPreview      = ApiRatings + "/preview"
	ApiRating             = ApiRatings + "/:id"
	ApiRatingOpponents    = ApiRating + "/opponents"
	ApiRatingChanges      = Api + "/rating-changes"
	ApiGlicko2            = Api + "/glicko2"
	ApiBrackets           = Api + "/brackets"
	ApiBracket            = ApiBrackets + "/:id"
	ApiBracketPlayable    = ApiBracket + "/playable"
	ApiBracketMatchStart  = ApiBracket + "/matches/:match/start"
	ApiBracketMatchResult = ApiBracket + "/matches/:match/result"
	ApiTournamentBracket  = Api + "/tournaments/:id/bracket"
	ApiExport             = Api + "/export"
	ApiImport             = Api + "/import"
)

func Path() map[string]string {
	return map[string]string{
		"Home":                  Home,
		"Api":                   Api,
		"ApiTiers":              ApiTiers,
		"ApiMatches":            ApiMatches,
		"ApiRatings":            ApiRatings,
		"ApiRatingPreview":      ApiRatingPreview,
		"ApiRating":             ApiRating,
		"ApiRatingOpponents":    ApiRatingOpponents,
		"ApiRatingChanges":      ApiRatingChanges,
		"ApiGlicko2":            ApiGlicko2,
		"ApiBrackets":           ApiBrackets,
		"ApiBracket":            ApiBracket,
		"ApiBracketPlayable":    ApiBracketPlayable,
		"ApiBracketMatchStart":  ApiBracketMatchStart,
		"ApiBracketMatchResult": ApiBracketMatchResult,
		"ApiTournamentBracket":  ApiTournamentBracket,
		"ApiExport":             ApiExport,
		"ApiImport":             ApiImport,
	}
}
