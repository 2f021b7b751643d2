// uartlite/wakers_2.go

//go:build uartlite_wakers2

package uartlite

const NumWakers = 2
