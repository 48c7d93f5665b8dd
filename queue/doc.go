/*
Package queue defines the tasks a compilation splits into, one per tree
of the forest, as well as an interface for a Queue to manage them.

It also provides an in-memory implementation of the Queue interface
*/
package queue
