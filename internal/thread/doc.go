// Package thread resolves forum thread references into locators.
//
// Two reference shapes are recognized:
//
//	https://{host}/test/read.cgi/{board}/{threadID}/
//	https://itest.5ch.net/{server}/test/read.cgi/{board}/{threadID}/
//
// The second form is the smartphone proxy served by itest.5ch.net and is
// rewritten to the direct form on {server}.5ch.net, so that the dat file of
// the thread can be requested from the origin server.
//
// Resolution never touches the network.
package thread
