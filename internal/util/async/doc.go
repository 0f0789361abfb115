// Package async runs independent operations concurrently.
//
// [Gather] waits for every task, keeps results in task order and joins the
// errors, so one slow or failing task never hides the output of the others.
package async
