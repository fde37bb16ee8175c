package wacc

import (
	"github.com/bytecodealliance/wasmtime-go"

	"github.com/cryptidtech/wacc/multikey"
	"github.com/cryptidtech/wacc/multisig"
)

// newCheckSignatureFunc implements the "_check_signature" import, the
// 4-param primary form of check_signature(pubkey_key, msg_key) (§4.3):
// verifies the multisig on top of pstack against current[pubkey_key] over
// proposed[msg_key], popping only the signature on success.
func newCheckSignatureFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType([]*wasmtime.ValType{i32, i32, i32, i32}, []*wasmtime.ValType{i32})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		pubkeyKey, err := getString(caller, params[0:2])
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}
		msgKey, err := getString(caller, params[2:4])
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}

		ok := checkSignatureCommon(ctx, pubkeyKey, msgKey)
		if ok {
			return []wasmtime.Val{wasmTrue}, nil
		}
		return []wasmtime.Val{wasmFalse}, nil
	})
}

// newCheckSignatureLegacyFunc implements "_check_signature_legacy", the
// 2-param compatibility form check_signature(key): pubkey comes from
// current[key], the message comes from the second item down on pstack
// (not proposed), and both message and signature are popped on success.
func newCheckSignatureLegacyFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType([]*wasmtime.ValType{i32, i32}, []*wasmtime.ValType{i32})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		key, err := getString(caller, params)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}

		pubkeyVal, ok := ctx.Current.Get(key)
		if !ok || !pubkeyVal.IsBin() {
			ctx.checkFail("no multikey associated with " + key)
			return []wasmtime.Val{wasmFalse}, nil
		}
		pubkeyBytes, _ := pubkeyVal.Bytes()

		if ctx.PStack.Len() < 2 {
			ctx.checkFail("pstack has fewer than 2 entries")
			return []wasmtime.Val{wasmFalse}, nil
		}
		sigVal, _ := ctx.PStack.Peek(0)
		msgVal, _ := ctx.PStack.Peek(1)

		if !sigVal.IsBin() {
			ctx.checkFail("unexpected value type for signature")
			return []wasmtime.Val{wasmFalse}, nil
		}
		if !msgVal.IsBin() && !msgVal.IsStr() {
			ctx.checkFail("unexpected value type for message")
			return []wasmtime.Val{wasmFalse}, nil
		}
		sigBytes, _ := sigVal.Bytes()
		msgBytes, _ := msgVal.Bytes()

		if err := verifySignature(pubkeyBytes, sigBytes, msgBytes); err != nil {
			ctx.checkFail(err.Error())
			return []wasmtime.Val{wasmFalse}, nil
		}

		ctx.PStack.Pop()
		ctx.PStack.Pop()
		ctx.checkSucceed()
		return []wasmtime.Val{wasmTrue}, nil
	})
}

// checkSignatureCommon runs the 4-param form's body shared by the host-call
// callback above; factored out so its control flow reads linearly.
func checkSignatureCommon(ctx *Context, pubkeyKey, msgKey string) bool {
	pubkeyVal, ok := ctx.Current.Get(pubkeyKey)
	if !ok || !pubkeyVal.IsBin() {
		ctx.checkFail("no multikey associated with " + pubkeyKey)
		return false
	}
	pubkeyBytes, _ := pubkeyVal.Bytes()

	msgVal, ok := ctx.Proposed.Get(msgKey)
	if !ok || (!msgVal.IsBin() && !msgVal.IsStr()) {
		ctx.checkFail("no message associated with " + msgKey)
		return false
	}
	msgBytes, _ := msgVal.Bytes()

	if ctx.PStack.IsEmpty() {
		ctx.checkFail("pstack is empty")
		return false
	}
	sigVal, _ := ctx.PStack.Top()
	if !sigVal.IsBin() {
		ctx.checkFail("unexpected value type for signature")
		return false
	}
	sigBytes, _ := sigVal.Bytes()

	if err := verifySignature(pubkeyBytes, sigBytes, msgBytes); err != nil {
		ctx.checkFail(err.Error())
		return false
	}

	ctx.PStack.Pop()
	ctx.checkSucceed()
	return true
}

// verifySignature decodes pubkeyBytes as a multikey and sigBytes as a
// multisig, then verifies sig over message.
func verifySignature(pubkeyBytes, sigBytes, message []byte) error {
	key, err := multikey.Decode(pubkeyBytes)
	if err != nil {
		return err
	}
	sig, err := multisig.Decode(sigBytes)
	if err != nil {
		return err
	}
	raw, err := sig.Signature()
	if err != nil {
		return err
	}
	verify, err := key.Verifier()
	if err != nil {
		return err
	}
	return verify(raw, message)
}
