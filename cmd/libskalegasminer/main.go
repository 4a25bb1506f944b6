// Package main builds libskalegasminer, a C-shared library exposing the
// mining engine to a host process (e.g. a game engine) through the same
// four entry points the original DLL surface offered: is_mining,
// hash_rate, mine_gas, and stop.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef void (*hash_rate_callback)(unsigned long long hash_rate);
typedef void (*result_callback)(int success, const char* candidate, const char* err_msg);

static inline void call_hash_rate_callback(hash_rate_callback cb, unsigned long long hash_rate) {
	if (cb) {
		cb(hash_rate);
	}
}

static inline void call_result_callback(result_callback cb, int success, const char* candidate, const char* err_msg) {
	if (cb) {
		cb(success, candidate, err_msg);
	}
}
*/
import "C"

import (
	"unsafe"

	"github.com/cryptopia/skalegasminer/internal/mining"
)

//export is_mining
func is_mining() C.int {
	if mining.Instance().IsMining() {
		return 1
	}
	return 0
}

//export hash_rate
func hash_rate() C.ulonglong {
	return C.ulonglong(mining.Instance().HashRate())
}

//export mine_gas
func mine_gas(
	amount C.ulonglong,
	fromAddress *C.char,
	nonce C.ulonglong,
	difficulty C.uint,
	hashRateCallback C.hash_rate_callback,
	resultCallback C.result_callback,
	maxThreads C.uint,
) {
	in := mining.Inputs{
		Amount:      uint64(amount),
		FromAddress: C.GoString(fromAddress),
		Nonce:       uint64(nonce),
		Difficulty:  uint32(difficulty),
		MaxThreads:  uint32(maxThreads),
	}

	mining.Instance().Mine(in,
		mining.RateSinkFunc(func(rate uint64) {
			C.call_hash_rate_callback(hashRateCallback, C.ulonglong(rate))
		}),
		mining.ResultSinkFunc(func(success bool, candidate string, errMsg string) {
			cCandidate := C.CString(candidate)
			defer C.free(unsafe.Pointer(cCandidate))
			cErrMsg := C.CString(errMsg)
			defer C.free(unsafe.Pointer(cErrMsg))

			ok := C.int(0)
			if success {
				ok = 1
			}
			C.call_result_callback(resultCallback, ok, cCandidate, cErrMsg)
		}),
	)
}

//export stop
func stop() {
	mining.Instance().Stop()
}

func main() {}
