// Bookshelf is a demo server exercising the sluice dispatch core: every
// handler returns a producer of a response action, and the dispatcher
// turns its terminal outcome into exactly one HTTP response.
package main

func main() {
	Execute()
}
