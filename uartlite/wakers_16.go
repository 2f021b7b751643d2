// uartlite/wakers_16.go

//go:build uartlite_wakers16

package uartlite

const NumWakers = 16
