package urls

// CanUtils is the linux-can userspace tools project. Its candump -l output
// is the trace format this tool reads.
const CanUtils = "https://github.com/linux-can/can-utils"

// SocketCAN documents CAN identifiers, frame layout and interface naming
// in the Linux kernel.
const SocketCAN = "https://www.kernel.org/doc/html/latest/networking/can.html"
