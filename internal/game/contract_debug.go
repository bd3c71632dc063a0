//go:build debug

package game

const strictContracts = true
