package engine

// Popcode values are CLASS(4)|OPCODE(8) exactly as emitted by the HAL/S
// compiler; they are not renumbered here, since a real HALMAT binary's
// instruction words must decode against these exact constants.

// Class 0: control flow / subscript.
const (
	popNOP  = 0x000
	popEXTN = 0x001
	popXREC = 0x002
	popIMRK = 0x003
	popSMRK = 0x004
	popPXRC = 0x005
	popIFHD = 0x007
	popLBL  = 0x008
	popBRA  = 0x009
	popFBRA = 0x00A
	popDCAS = 0x00B
	popECAS = 0x00C
	popCLBL = 0x00D
	popDTST = 0x00E
	popETST = 0x00F
	popDFOR = 0x010
	popEFOR = 0x011
	popCFOR = 0x012
	popDSMP = 0x013
	popESMP = 0x014
	popAFOR = 0x015
	popCTST = 0x016
	popADLP = 0x017
	popDLPE = 0x018
	popDSUB = 0x019
	popIDLP = 0x01A
	popTSUB = 0x01B
	popPCAL = 0x01D
	popFCAL = 0x01E
	popREAD = 0x01F
	popRDAL = 0x020
	popWRIT = 0x021
	popFILE = 0x022
	popXXST = 0x025
	popXXND = 0x026
	popXXAR = 0x027
	popTDEF = 0x02A
	popMDEF = 0x02B
	popFDEF = 0x02C
	popPDEF = 0x02D
	popUDEF = 0x02E
	popCDEF = 0x02F
	popCLOS = 0x030
	popEDCL = 0x031
	popRTRN = 0x032
	popTDCL = 0x033
	popWAIT = 0x034
	popSGNL = 0x035
	popCANC = 0x036
	popTERM = 0x037
	popPRIO = 0x038
	popSCHD = 0x039
	popERON = 0x03C
	popERSE = 0x03D
	popMSHP = 0x040
	popVSHP = 0x041
	popSSHP = 0x042
	popISHP = 0x043
	popSFST = 0x045
	popSFND = 0x046
	popSFAR = 0x047
	popBFNC = 0x04A
	popLFNC = 0x04B
	popTNEQ = 0x04D
	popTEQU = 0x04E
	popTASN = 0x04F
	popIDEF = 0x051
	popICLS = 0x052
	popNNEQ = 0x055
	popNEQU = 0x056
	popNASN = 0x057
	popPMHD = 0x059
	popPMAR = 0x05A
	popPMIN = 0x05B
)

// Class 1: bit.
const (
	popBASN = 0x101
	popBAND = 0x102
	popBOR  = 0x103
	popBNOT = 0x104
	popBCAT = 0x105
	popBTOB = 0x121
	popITOB = 0x1C1
)

// Class 2: character.
const (
	popCASN = 0x201
	popCCAT = 0x202
	popBTOC = 0x221
	popCTOC = 0x241
	popSTOC = 0x2A1
	popITOC = 0x2C1
)

// Class 3: matrix.
const (
	popMASN = 0x301
	popMADD = 0x362
	popMSUB = 0x363
	popMNEG = 0x344
	popMMPR = 0x368
	popMSPR = 0x3A5
	popMSDV = 0x3A6
	popMTRA = 0x329
	popMDET = 0x371
	popMIDN = 0x373
	popMTOM = 0x341
	popMINV = 0x3CA
	popVVPR = 0x387
)

// Class 4: vector.
const (
	popVASN = 0x401
	popVADD = 0x482
	popVSUB = 0x483
	popVNEG = 0x444
	popVMPR = 0x46D
	popVSPR = 0x4A5
	popVCRS = 0x48B
	popVTOV = 0x441
	popMVPR = 0x46C
	popVDOT = 0x58E
)

// Class 5: scalar (double).
const (
	popSASN = 0x501
	popBTOS = 0x521
	popCTOS = 0x541
	popSIEX = 0x571
	popSPEX = 0x572
	popSTOS = 0x5A1
	popSADD = 0x5AB
	popSSUB = 0x5AC
	popSSPR = 0x5AD
	popSSDV = 0x5AE
	popSEXP = 0x5AF
	popSNEG = 0x5B0
	popITOS = 0x5C1
)

// Class 6: integer.
const (
	popIASN = 0x601
	popBTOI = 0x621
	popCTOI = 0x641
	popSTOI = 0x6A1
	popITOI = 0x6C1
	popIADD = 0x6CB
	popISUB = 0x6CC
	popIIPR = 0x6CD
	popINEG = 0x6D0
	popIPEX = 0x6D2
)

// Class 7: conditional.
const (
	popBTRU = 0x720
	popBNEQ = 0x725
	popBEQU = 0x726
	popCNEQ = 0x745
	popCEQU = 0x746
	popCNGT = 0x747
	popCGT  = 0x748
	popCNLT = 0x749
	popCLT  = 0x74A
	popMNEQ = 0x765
	popMEQU = 0x766
	popVNEQ = 0x785
	popVEQU = 0x786
	popSNEQ = 0x7A5
	popSEQU = 0x7A6
	popSNGT = 0x7A7
	popSGT  = 0x7A8
	popSNLT = 0x7A9
	popSLT  = 0x7AA
	popINEQ = 0x7C5
	popIEQU = 0x7C6
	popINGT = 0x7C7
	popIGT  = 0x7C8
	popINLT = 0x7C9
	popILT  = 0x7CA
	popCAND = 0x7E2
	popCOR  = 0x7E3
	popCNOT = 0x7E4
)

// Class 8: initialization.
const (
	popSTRI = 0x801
	popSLRI = 0x802
	popELRI = 0x803
	popETRI = 0x804
	popBINT = 0x821
	popCINT = 0x841
	popMINT = 0x861
	popVINT = 0x881
	popSINT = 0x8A1
	popIINT = 0x8C1
	popNINT = 0x8E1
	popTINT = 0x8E2
	popEINT = 0x8E3
)

// Operand qualifier codes (QUAL field).
const (
	qualNone = 0
	qualSYT  = 1
	qualINL  = 2
	qualVAC  = 3
	qualXPT  = 4
	qualLIT  = 5
	qualIMD  = 6
	qualAST  = 7
	qualCSZ  = 8
	qualASZ  = 9
	qualOFF  = 10
)

// Literal table entry types (lit1 low byte).
const (
	litChar   = 0
	litArith  = 1
	litBit    = 2
	litDouble = 5
)

// Exported aliases of the literal-type constants, for package loader's
// source-string recovery pass, which filters LIT entries by type before
// the engine itself runs.
const (
	LitChar   = litChar
	LitArith  = litArith
	LitBit    = litBit
	LitDouble = litDouble
)
