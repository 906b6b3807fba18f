package dnssec

// RSA-2048 key material of the well-known signing key, big-endian hex.

const keyModulusHex = "" +
	"00b05f7ae597449dc5ee49bc31843d015772e78549113f0f395acf8b4e892e70" +
	"a7c1691e8618e576a9cfc2c9f048dd90663344e926d87348a55959e75d795c5c" +
	"8cc019faa508c3853b3643c65c02e20d551022dc7f660701b6257686615f5690" +
	"2b42874c531bde2b330bce3f156d6a464eeda6cb3c824d0d4c20a75da1e7bce5" +
	"2e106df8cc6ccd67474d0c2fa6c1a9484ea4e2b17e2f95e327238de69f20d578" +
	"5c221b69c0fb6e9d8026e36b9f6a80ce2c4fe7181ea134b559001459b7ce8cb4" +
	"731befc3aff70cc7478bb987f556ceceb05662b6dcdd06832fdf1052d0a49493" +
	"03346354934eb1dff71c8ea9a5022300fb92c8851e26543e8abbed2f610ef488" +
	"6f"

const keyPubExpHex = "010001"

const keyPrivExpHex = "" +
	"04e953c1caf9952f2ad890ce0c31aab4e5b53ec7ef1c036f8470dd1f3dc0b650" +
	"659968c9312e4aa4a5ed75b424434f3f195464edb8ff54d98de86c01f55c3613" +
	"9151e7e1eaa18f373be69d4278ae14d2f69511f0d64581adb1d360209c080c11" +
	"b8538e338e461c8bda5b4ef468cc99d29ed993354727a0242b909d91e1a327fa" +
	"9985c1dabedd034f4e9f065d0446bf3b50e106e0264d5adef8e664d7445ec78c" +
	"131a1c737d65004b17d07e10b972bf5c47547e2a6ea439ff515f70440cd02ba5" +
	"01d5d9dd71f45c9e90ecf0047d73ba1821792773b80191eeb5d0bcb20c09267f" +
	"d0bbdd4ab509898d19875b64be17545b8859aacf86cf8525ed01752467126579"

const keyPrime1Hex = "" +
	"00e9397c965bb98e2374536f973c5bdf1ab5cfa92be14b7447be5a3de1e47335" +
	"1674710b242c722dde32c7ac2048d95ca4185df96954aa4dbba6bf8727b05966" +
	"419565fce98c2c8e38ba09d6cb4d39a37c923aa17716c03497c4900f4bc8264d" +
	"544d3bbda1b02a57bd8a6edf6cc7a7d27ae47ac5c9123656207160e58ed1de51" +
	"ab"

const keyPrime2Hex = "" +
	"00c198ba6c1c9d26f27ad4f28dad743210fd797788b50a71a1d8e05f6c689048" +
	"c369bf315c29f47bf6a9f62be5e157a788ae61366ccdebce3804ebaaefe9fcd0" +
	"9f92c30cded9b82a0f05f015f611f7fc3afb1aa0b51af5a8786fdd796a1b3eec" +
	"c11b19d6d41d955632afa86d7c0d9559960b2314df4d33a7f786880f34d239e8" +
	"4d"
