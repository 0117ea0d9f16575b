package relay

import "sync"

// payloadPool recycles *GatewayPayload values across the read loop, mirroring
// the teacher's wrapper/pool.go use of sync.Pool to keep the hot path of
// reading frames off the socket allocation-free.
var payloadPool = sync.Pool{
	New: func() interface{} {
		return new(GatewayPayload)
	},
}

func getPayload() *GatewayPayload {
	return payloadPool.Get().(*GatewayPayload)
}

func putPayload(p *GatewayPayload) {
	p.reset()
	payloadPool.Put(p)
}
