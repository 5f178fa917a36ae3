// Package main provides the entry point for the threadodds CLI.
//
// threadodds reads one or more bulletin board threads, counts how many
// posts mention each keyword group and turns the counts into betting odds.
//
// Usage:
//
//	threadodds analyze <thread-url> [range] -k "A|alias" -k B
//	threadodds analyze --list threads.txt --preset derby
//
// See --help for all available options.
package main

func main() {
	Execute()
}
