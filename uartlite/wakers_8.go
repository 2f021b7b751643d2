// uartlite/wakers_8.go

//go:build uartlite_wakers8

package uartlite

const NumWakers = 8
