package main

var (
	Version = "unknown version"
	Compile = "unknown datetime"
)
