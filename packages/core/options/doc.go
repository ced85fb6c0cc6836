// Package options parses bddrun's --key=value command-line tokens into a
// validated config.RunConfig.
//
// Tokens are consumed strictly left to right. Each recognized key has one
// validator; the first invalid value, unknown option or help request stops
// parsing, so a partially applied configuration never escapes.
package options
