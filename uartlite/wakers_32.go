// uartlite/wakers_32.go

//go:build uartlite_wakers32

package uartlite

const NumWakers = 32
