/*
Package shader builds and drives GPU shader programs.

A Program is compiled from vertex, fragment and optional geometry source
text, linked, and then activated and fed uniforms each frame. Programs are
built against an explicit Context, which wraps the graphics API and owns the
context-wide "current program" slot. The opengl backend implements Context
on OpenGL 4.1 core; shadertest implements it in memory for tests.

# Quick Start

	window, _ := opengl.NewWindow(opengl.WindowConfig{Width: 800, Height: 600, Title: "lesson"})
	defer window.Close()

	prog, err := shader.New(opengl.Context{}, shader.Sources{
	    Vertex:   vertexSource,
	    Fragment: fragmentSource,
	})
	if err != nil {
	    if stage, ok := shader.FailedStage(err); ok {
	        log.Fatalf("%s stage:\n%s", stage, shader.FailureLog(err))
	    }
	    log.Fatal(err)
	}
	defer prog.Delete()

	window.Run(func(dt float64) error {
	    prog.Activate()
	    prog.SetMat4("u_transform", mgl32.Ident4())
	    prog.SetFloat("u_time", float32(glfw.GetTime()))
	    gl.DrawArrays(gl.TRIANGLES, 0, 3)
	    return nil
	})

# Errors

New never returns a partially built program. Compile failures are
*CompileError naming the stage ("VERTEX", "FRAGMENT", "GEOMETRY"), link
failures are *LinkError (stage "PROGRAM"), and creation failures are
*ResourceError. FailedStage and FailureLog read the stage and log of
either failure kind. The log text is exactly what the driver reported. A log
that is not valid UTF-8 is reported with ErrDecodeLog.

# Uniforms

Setters resolve the name in the program and upload to whatever program is
current on the context, mirroring GL. They never activate the program, so
call Activate first. A name that does not resolve is a no-op; use
WithMissingUniform or SetVerbose to observe it.

# Threading

A Context and its programs must be used from the goroutine and OS thread
that own the GL context. Nothing here locks.
*/
package shader
