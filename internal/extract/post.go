package extract

import "errors"

// ErrNoPosts is returned when fetched content yields no posts.
var ErrNoPosts = errors.New("no posts retrieved")

// Post is one message of a thread.
type Post struct {
	// Number is the 1-based position of the post in the thread.
	Number int `json:"number"`

	// Body is the plain-text message.
	Body string `json:"body"`
}

// Bodies returns the message texts of posts in order.
func Bodies(posts []Post) []string {
	bodies := make([]string, len(posts))
	for i, p := range posts {
		bodies[i] = p.Body
	}
	return bodies
}

// number assigns 1-based positions to bodies.
func number(bodies []string) []Post {
	posts := make([]Post, len(bodies))
	for i, b := range bodies {
		posts[i] = Post{Number: i + 1, Body: b}
	}
	return posts
}
