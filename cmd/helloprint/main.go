// Command helloprint reads a pcap, reassembles client-to-server TCP
// streams, and passively fingerprints the SSL/TLS clients it finds.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/google/gopacket/tcpassembly"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/packetsight/helloprint"
	"github.com/packetsight/helloprint/loader"
)

// printSink writes each observation in a key = value layout so raw and
// matched signatures line up for visual diffing.
type printSink struct {
	out io.Writer
}

func (s printSink) SSLRequest(r helloprint.Report) {
	fmt.Fprintf(s.out, "%s:\n", helloprint.EventSSLRequest)
	if len(r.App) > 0 {
		fmt.Fprintf(s.out, "  %-9s = %s\n", r.Matched.Class, r.App)
		fmt.Fprintf(s.out, "  match_sig = %s\n", r.MatchSig)
	}
	if r.DriftValid {
		fmt.Fprintf(s.out, "  drift     = %d\n", r.Drift)
	}
	fmt.Fprintf(s.out, "  raw_sig   = %s\n", r.RawSig)
}

// helloStream feeds one direction of a reassembled TCP stream into the
// processor until the flow resolves or the processor stops asking for
// more.
type helloStream struct {
	processor *helloprint.Processor
	flow      helloprint.Flow
	done      bool
}

func (h *helloStream) Reassembled(segments []tcpassembly.Reassembly) {
	if h.done {
		return
	}
	for _, seg := range segments {
		if seg.Skip != 0 {
			// Bytes were lost; whatever follows cannot be parsed.
			h.done = true
			return
		}
		h.flow.Append(seg.Bytes, seg.Seen)
	}
	// Without connection tracking every stream is treated as the client
	// side; server streams simply resolve as not SSL.
	if !h.processor.Process(&h.flow, true) {
		h.done = true
	}
}

func (h *helloStream) ReassemblyComplete() {
	h.done = true
}

type helloFactory struct {
	processor *helloprint.Processor
}

func (f *helloFactory) New(net, transport gopacket.Flow) tcpassembly.Stream {
	return &helloStream{processor: f.processor}
}

func run(cmd *cobra.Command, signatureFile, pcapFile, s3Config string, verbose bool) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}
	helloprint.SetLogger(logger)

	config := helloprint.Config{
		SignatureFileName: signatureFile,
		Sink:              printSink{out: cmd.OutOrStdout()},
	}
	if len(s3Config) > 0 {
		s3, err := loader.NewS3Instance(s3Config)
		if err != nil {
			return err
		}
		config.Loader = s3
	}
	processor, err := helloprint.NewProcessor(config)
	if err != nil {
		return err
	}
	logger.Info().Int("records", processor.Database.Len()).Msg("signature database loaded")

	handle, err := pcap.OpenOffline(pcapFile)
	if err != nil {
		return err
	}
	defer handle.Close()

	pool := tcpassembly.NewStreamPool(&helloFactory{processor: &processor})
	assembler := tcpassembly.NewAssembler(pool)
	source := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range source.Packets() {
		tcpLayer := packet.Layer(layers.LayerTypeTCP)
		if tcpLayer == nil {
			continue
		}
		tcp := tcpLayer.(*layers.TCP)
		assembler.AssembleWithTimestamp(packet.NetworkLayer().NetworkFlow(), tcp, packet.Metadata().Timestamp)
	}
	assembler.FlushAll()
	return nil
}

func main() {
	var (
		signatureFile string
		pcapFile      string
		s3Config      string
		verbose       bool
	)
	root := &cobra.Command{
		Use:           "helloprint",
		Short:         "Passively fingerprint SSL/TLS clients in a pcap",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, signatureFile, pcapFile, s3Config, verbose)
		},
	}
	root.Flags().StringVarP(&signatureFile, "signatures", "s", "ssl.sigs", "file containing client signatures")
	root.Flags().StringVarP(&pcapFile, "pcap", "r", "", "pcap file to read client hellos from")
	root.Flags().StringVar(&s3Config, "s3-config", "", "load signatures from S3 using this viper config file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	root.MarkFlagRequired("pcap")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
