// Package smc implements the sliding-mode control family: shared
// primitives (sliding surface, switching function, equivalent control,
// gain validation) composed by value into four controller variants
// (classical, super-twisting, adaptive, hybrid adaptive-STA). Variants
// are tagged-variant values behind a narrow [Controller] interface, not
// a class hierarchy -- the factory package in this repo is the only
// place dispatch happens.
package smc
