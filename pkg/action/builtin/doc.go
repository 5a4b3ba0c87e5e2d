// Package builtin provides the actions every Baxter assistant ships with:
// time, greeting, chat clearing, website opening, song playback, jokes and
// the replay action.
package builtin
