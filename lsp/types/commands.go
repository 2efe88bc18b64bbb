package types

// Commands the server executes through workspace/executeCommand.
const (
	CommandExtractTranslationString = "vocabHelper.extractTranslationString"
	CommandOpenTranslationsFile     = "vocabHelper.openTranslationsFile"
)

// MethodExtractPreview is the custom request returning what an extraction
// would do without applying it.
const MethodExtractPreview = "vocabHelper/extractPreview"

// Commands lists every command advertised in the initialize result.
var Commands = []string{
	CommandExtractTranslationString,
	CommandOpenTranslationsFile,
}
