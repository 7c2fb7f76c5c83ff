package espeak

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

static int
espeak_open(const char *lang, int rate)
{
	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	espeak_VOICE props;
	memset(&props, 0, sizeof(props));
	props.languages = lang;
	if (espeak_SetVoiceByProperties(&props) != EE_OK)
	{ return -2; }

	espeak_SetParameter(espeakRATE, rate, 0);
	return 0;
}

static int
espeak_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, POS_CHARACTER, 0, espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -2; }
	espeak_Synchronize();
	return 0;
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

const (
	DefaultVoice = "en"
	DefaultRate  = 200
)

// Engine is a process-wide espeak-ng instance. Calls are serialized.
type Engine struct {
	mu sync.Mutex
}

func Open(voice string, rate int) (*Engine, error) {
	cvoice := C.CString(voice)
	defer C.free(unsafe.Pointer(cvoice))

	if rc := C.espeak_open(cvoice, C.int(rate)); rc != 0 {
		return nil, fmt.Errorf("espeak init failed: %d", int(rc))
	}
	return &Engine{}, nil
}

func (e *Engine) Speak(text string) error {
	if text == "" {
		return nil
	}

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	e.mu.Lock()
	defer e.mu.Unlock()

	if rc := C.espeak_say(ctext); rc != 0 {
		return fmt.Errorf("espeak_say failed: %d", int(rc))
	}
	return nil
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	C.espeak_Terminate()
}
